package apiclient

// AttendanceRecord is one biometric marking stored by the backend.
type AttendanceRecord struct {
	ID           int64  `json:"id"`
	EmployeeName string `json:"employee_name"`
	EventType    string `json:"event_type"`
	EventDate    string `json:"event_date"`
	Timestamp    string `json:"timestamp"`
	DeviceID     string `json:"device_id"`
	RawPayload   string `json:"raw_payload,omitempty" table:"wide"`
}

// AttendanceStats holds the backend's aggregate counts.
type AttendanceStats struct {
	TotalRecords    int64 `json:"total_records"`
	TodayRecords    int64 `json:"today_records"`
	UniqueEmployees int64 `json:"unique_employees"`
}
