package event_bus

const (
	TemplateDefaultChangedType EventType = "template.default.changed"
	TemplateDeletedType        EventType = "template.deleted"
)

// TemplateDefaultChanged is published after a template became the default one.
type TemplateDefaultChanged struct {
	TemplateId string
	FilePath   string
	Profile    string
}

// TemplateDeleted is published after a template file and its record were removed.
type TemplateDeleted struct {
	TemplateId string
	FilePath   string
	WasDefault bool
}
