package status

type Status string

const (
	UNKNOWN Status = ""
	Present Status = "PRESENT"
	Absent  Status = "ABSENT"
	Leave   Status = "LEAVE"
)

func (s Status) Valid() bool {
	switch s {
	case Present, Absent, Leave:
		return true
	}
	return false
}
