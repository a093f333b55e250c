// Package risk implements the numerical core of the provisioning engine:
// amortized balance modeling, exposure schedules, present-value
// discounting, logistic default-probability scoring and loss-given-default
// policy. Everything in this package is a pure function of its inputs plus
// the pretrained model artifact; no state is held between calls, so all
// functions are safe for concurrent use.
package risk
