package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type CreateCoordinatorMailData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type ResetPasswordMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type GapReportMailData struct {
	FullName       string `json:"fullName"`
	Month          int32  `json:"month"`
	Year           int32  `json:"year"`
	ShortfallCount int    `json:"shortfallCount"`
	UnderTarget    int    `json:"underTarget"`
	WorkerCount    int    `json:"workerCount"`
	ScheduledHours int32  `json:"scheduledHours"`
}
