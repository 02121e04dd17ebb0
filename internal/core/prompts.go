package core

import (
	"encoding/json"
	"fmt"
)

// Command is one instruction from a Flow to its host.
type Command interface {
	// Kind names the command: "page", "exit" or "end".
	Kind() string
	command()
}

// Prompt is the interactive part of a Page.
type Prompt interface {
	// Kind names the prompt: "file", "retry" or "consent".
	Kind() string
	prompt()
}

// Page asks the host to render a header and a prompt and to return the
// participant's answer.
type Page struct {
	Platform string
	Header   Translatable
	Prompt   Prompt
}

// Exit tells the host the conversation is over.
type Exit struct {
	Code int
	Info string
}

// EndPage asks the host to render its closing page. It is always the last
// command of a Flow.
type EndPage struct{}

func (Page) Kind() string    { return "page" }
func (Exit) Kind() string    { return "exit" }
func (EndPage) Kind() string { return "end" }

func (Page) command()    {}
func (Exit) command()    {}
func (EndPage) command() {}

// FilePrompt asks for a file. Answered with a string payload holding the
// chosen file's path, or anything else to skip.
type FilePrompt struct {
	Description Translatable
	Extensions  string
}

// RetryPrompt tells the participant the file was not recognised. Answered
// with true to try again, anything else to give up.
type RetryPrompt struct {
	Description Translatable
	Ok          Translatable
	Cancel      Translatable
}

// ConsentPrompt shows the extracted tables for review. Any answer ends the
// conversation; a JSON payload carries the participant's consent decision.
type ConsentPrompt struct {
	ID          string
	Description Translatable
	Tables      []Table
}

func (FilePrompt) Kind() string    { return "file" }
func (RetryPrompt) Kind() string   { return "retry" }
func (ConsentPrompt) Kind() string { return "consent" }

func (FilePrompt) prompt()    {}
func (RetryPrompt) prompt()   {}
func (ConsentPrompt) prompt() {}

// Donation is the consent payload of a participant who agreed to donate the
// reviewed tables.
type Donation struct {
	ID     string  `json:"id"`
	Tables []Table `json:"tables"`
}

// Donate answers p with agreement to donate all of its tables.
func Donate(p ConsentPrompt) (Response, error) {
	d := Donation{ID: p.ID, Tables: p.Tables}
	if d.Tables == nil {
		d.Tables = []Table{}
	}
	data, err := json.Marshal(d)
	if err != nil {
		return Response{}, fmt.Errorf("encode consent: %w", err)
	}
	return JSON(string(data)), nil
}

var (
	fileDescription = NewTranslatable(map[string]string{
		"en": "Please follow the download instructions and choose the file that you stored on your device.",
		"nl": "Volg de download instructies en kies het bestand dat u opgeslagen heeft op uw apparaat.",
	})
	retryOk = NewTranslatable(map[string]string{
		"en": "Try again",
		"nl": "Probeer opnieuw",
	})
	retryCancel = NewTranslatable(map[string]string{
		"en": "Continue",
		"nl": "Verder",
	})
)

func retryDescription(platform string) Translatable {
	return NewTranslatable(map[string]string{
		"en": fmt.Sprintf("Unfortunately, we cannot process your %s file. Continue, if you are sure that you selected the right file. Try again to select a different file.", platform),
		"nl": fmt.Sprintf("Helaas, kunnen we uw %s bestand niet verwerken. Weet u zeker dat u het juiste bestand heeft gekozen? Ga dan verder. Probeer opnieuw als u een ander bestand wilt kiezen.", platform),
	})
}

// PayloadKind identifies the type of a Response.
type PayloadKind int

const (
	PayloadVoid PayloadKind = iota
	PayloadTrue
	PayloadFalse
	PayloadString
	PayloadJSON
)

// String returns the payload kind name.
func (k PayloadKind) String() string {
	switch k {
	case PayloadVoid:
		return "void"
	case PayloadTrue:
		return "true"
	case PayloadFalse:
		return "false"
	case PayloadString:
		return "string"
	case PayloadJSON:
		return "json"
	default:
		return "unknown"
	}
}

// Response is the host's answer to a Command. The zero value is a void
// payload, which is what starts a Flow.
type Response struct {
	Kind  PayloadKind
	Value string
}

// Void returns an empty response.
func Void() Response { return Response{Kind: PayloadVoid} }

// Bool returns a true or false response.
func Bool(b bool) Response {
	if b {
		return Response{Kind: PayloadTrue}
	}
	return Response{Kind: PayloadFalse}
}

// String returns a string response, typically a file path.
func String(v string) Response { return Response{Kind: PayloadString, Value: v} }

// JSON returns a response carrying raw JSON.
func JSON(v string) Response { return Response{Kind: PayloadJSON, Value: v} }
