package mail

type AnalysisReadyEmailData struct {
	Domain       string
	DashboardURL string
}

type WaitlistEmailData struct {
	Name string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string

	dialer Dialer
}
