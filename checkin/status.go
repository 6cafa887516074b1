package checkin

// Status is the application-level election day status of a poll worker.
type Status string

const (
	StatusAttended Status = "ATTENDED"
	StatusNoShow   Status = "NO_SHOW"
	StatusUnknown  Status = ""
)

// MapRawStatusToEnum interprets the value stored in a worker's status field
// using the county's configured option strings. Values matching neither
// option, including an unset field, map to StatusUnknown.
func MapRawStatusToEnum(raw string, attended string, noShow string) Status {
	switch {
	case raw == "":
		return StatusUnknown
	case raw == attended:
		return StatusAttended
	case raw == noShow:
		return StatusNoShow
	default:
		return StatusUnknown
	}
}

// MapEnumToRawStatus returns the option string to write for a status.
// Every status other than StatusAttended, StatusUnknown included, is written
// as the no show option.
func MapEnumToRawStatus(status Status, attended string, noShow string) string {
	if status == StatusAttended {
		return attended
	}
	return noShow
}
