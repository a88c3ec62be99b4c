package model

type Stats struct {
	Mode          string  `json:"mode"` // "authenticated" or "guest"
	FolderCount   int64   `json:"folder_count"`
	NoteCount     int64   `json:"note_count"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	CPUPercent    float64 `json:"cpu_percent"`
}
