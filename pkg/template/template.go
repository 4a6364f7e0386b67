package template

import (
	"time"

	"github.com/google/uuid"
)

const DocxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// TemplateAsset is a stored .docx template. At most one asset is the default.
type TemplateAsset struct {
	Id          uuid.UUID
	Name        string
	Description string
	FilePath    string
	IsDefault   bool
	// Profile is the id of the mapping profile the template's placeholders follow.
	Profile   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type UploadRequest struct {
	Filename    string
	Name        string
	Description string
	Profile     string
	Content     []byte
}
