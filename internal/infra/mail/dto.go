package mail

type RunSummaryData struct {
	CampaignName string
	Sent         int
	Failed       int
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}
