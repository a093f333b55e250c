package domain

// Stage is the IFRS-9 risk bucket of a loan.
type Stage int

const (
	// StageUnclassified marks an NDIA value that fell outside every
	// configured range. Downstream calculators exclude it from totals.
	StageUnclassified Stage = 0

	Stage1 Stage = 1 // performing
	Stage2 Stage = 2 // significant increase in credit risk
	Stage3 Stage = 3 // credit-impaired
)

// String returns the reporting label for the stage.
func (s Stage) String() string {
	switch s {
	case Stage1:
		return "Stage 1"
	case Stage2:
		return "Stage 2"
	case Stage3:
		return "Stage 3"
	default:
		return "Unclassified"
	}
}

// Category is the local regulatory provisioning bucket of a loan.
type Category string

const (
	CategoryCurrent     Category = "current"
	CategoryOLEM        Category = "olem"
	CategorySubstandard Category = "substandard"
	CategoryDoubtful    Category = "doubtful"
	CategoryLoss        Category = "loss"

	// CategoryUnclassified marks an NDIA value outside every configured
	// range; excluded from provisions and reported as a data-quality count.
	CategoryUnclassified Category = "unclassified"
)

// Categories lists the regulatory buckets in ascending risk order.
func Categories() []Category {
	return []Category{
		CategoryCurrent,
		CategoryOLEM,
		CategorySubstandard,
		CategoryDoubtful,
		CategoryLoss,
	}
}
