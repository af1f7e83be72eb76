package content

import "github.com/Abraxas-365/resumegpt/pkg/kernel"

const DefaultQuestionCount = 5

type CoverLetterRequest struct {
	JobDescription string `json:"job_description" query:"job_description" form:"job_description"`
	JobDesc        string `json:"job_desc" query:"job_desc" form:"job_desc"`
}

// Description accepts either field name
func (r CoverLetterRequest) Description() kernel.JobDescription {
	if r.JobDescription != "" {
		return kernel.JobDescription(r.JobDescription)
	}
	return kernel.JobDescription(r.JobDesc)
}

type InterviewQuestionsRequest struct {
	Role string `json:"role" query:"role" form:"role"`
}

type CoverLetter struct {
	JobDescription kernel.JobDescription `json:"job_description"`
	Text           string                `json:"cover_letter"`
}

type InterviewQuestions struct {
	Role      kernel.Role `json:"role"`
	Questions []string    `json:"questions"`
}
