package dto

type IngestFileInput struct {
	Path string
}

type IngestOutput struct {
	CandidateID   string
	Name          string
	Email         string
	Phone         string
	ResumeFile    string
	MissingFields []string
}
