package dto

// CourseInput is one catalog entry as submitted by the host (CSV ingestion
// or a direct API call both produce this shape).
type CourseInput struct {
	ID          string          `json:"id" validate:"required"`
	Name        string          `json:"name" validate:"required"`
	Credits     int             `json:"credits" validate:"min=0"`
	Professor   string          `json:"professor"`
	TimeSlots   []TimeSlotInput `json:"timeSlots" validate:"required,min=1,dive"`
	Category    string          `json:"category"`
	TargetGrade string          `json:"targetGrade"`
}

// TimeSlotInput is a weekly occupied interval, minutes given as HH:MM on
// the wire and validated to fall on a 5-minute grid by the engine compiler.
type TimeSlotInput struct {
	Day   int    `json:"day" validate:"min=0,max=6"`
	Start string `json:"start" validate:"required"`
	End   string `json:"end" validate:"required"`
	Room  string `json:"room"`
}

// FilterInput is a requirement/desire predicate (§3 Filter).
type FilterInput struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Professor string `json:"professor"`
}

// ExcludedIntervalInput is a forbidden weekly interval.
type ExcludedIntervalInput struct {
	Day   int    `json:"day" validate:"min=0,max=6"`
	Start string `json:"start" validate:"required"`
	End   string `json:"end" validate:"required"`
}

// GenerateScheduleRequest is the wire shape of generate(catalog, config,
// options) (§6). Catalog may be omitted if the caller previously uploaded
// one via the ingestion endpoint and references it by CatalogRef.
type GenerateScheduleRequest struct {
	Catalog           []CourseInput           `json:"catalog" validate:"omitempty,dive"`
	CatalogRef        string                  `json:"catalogRef"`
	MinCredits        int                     `json:"minCredits" validate:"min=0"`
	MaxCredits        int                     `json:"maxCredits" validate:"required,gtefield=MinCredits"`
	Required          []FilterInput           `json:"required"`
	Desired           []FilterInput           `json:"desired"`
	ExcludedDays      []int                   `json:"excludedDays" validate:"omitempty,dive,min=0,max=6"`
	ExcludedIntervals []ExcludedIntervalInput `json:"excludedIntervals" validate:"omitempty,dive"`
	Seed              uint64                  `json:"seed"`
	Target            int                     `json:"target" validate:"omitempty,min=1"`
	BatchLimit        int                     `json:"batchLimit" validate:"omitempty,min=1"`
}

// ScheduleView is one returned Schedule rendered for the wire.
type ScheduleView struct {
	Courses      []CourseInput `json:"courses"`
	TotalCredits int           `json:"totalCredits"`
	RandomFilled bool          `json:"randomFilled"`
}

// GenerateScheduleResponse is the synchronous or polled result of a run.
// CacheHit reports whether the run reused a cached compilation rather than
// recompiling the catalog/configuration; it is carried separately from the
// envelope's meta so service-layer code (which has no gin.Context) can set
// it directly.
type GenerateScheduleResponse struct {
	JobID     string         `json:"jobId"`
	Status    string         `json:"status"`
	Schedules []ScheduleView `json:"schedules,omitempty"`
	Error     string         `json:"error,omitempty"`
	CacheHit  bool           `json:"-"`
}
