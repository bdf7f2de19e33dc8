package enums

// PaymentRecordStatus is the state of a persisted payment row. The simulated processor
// has no failure path, so every recorded payment is completed.
type PaymentRecordStatus string

const (
	PaymentRecordStatusCompleted PaymentRecordStatus = "completed"
)

// String implements fmt.Stringer.
func (p PaymentRecordStatus) String() string {
	return string(p)
}
