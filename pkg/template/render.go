package template

import (
	"regexp"
	"strings"
)

// EmailContent is the rendered email payload for one dispatch.
type EmailContent struct {
	Subject  string
	BodyHTML string
	BodyText string
}

// PushContent is the rendered push payload for one dispatch.
type PushContent struct {
	Title     string
	Body      string
	ImageURL  string
	ActionURL string
}

// placeholderRegex matches {{ name }} with arbitrary surrounding whitespace.
// The body pattern is permissive so malformed names are still consumed and
// replaced with the empty string instead of leaking raw braces.
var placeholderRegex = regexp.MustCompile(`\{\{\s*([^{}]*?)\s*\}\}`)

// Substitute replaces every {{ name }} placeholder in s with vars[name].
// Unknown names become the empty string; no placeholder survives rendering.
func Substitute(s string, vars map[string]string) string {
	if s == "" {
		return ""
	}
	return placeholderRegex.ReplaceAllStringFunc(s, func(match string) string {
		name := placeholderRegex.FindStringSubmatch(match)[1]
		return vars[name]
	})
}

// RenderEmail produces the email content for t with vars substituted into
// subject and both body variants.
func RenderEmail(t *Template, vars map[string]string) EmailContent {
	return EmailContent{
		Subject:  Substitute(t.EmailSubject, vars),
		BodyHTML: Substitute(t.EmailBodyHTML, vars),
		BodyText: Substitute(t.EmailBodyText, vars),
	}
}

// RenderPush produces the push content for t. When the push-specific fields
// are empty it falls back through the email fields so a template authored
// only for email still yields a usable push message:
//
//	title: push_title -> email_subject -> template_name -> template_key
//	body:  push_body -> email_body_text -> stripped email_body_html -> ""
func RenderPush(t *Template, vars map[string]string) PushContent {
	title := Substitute(t.PushTitle, vars)
	if title == "" {
		title = Substitute(t.EmailSubject, vars)
	}
	if title == "" {
		title = t.Name
	}
	if title == "" {
		title = t.Key
	}

	body := Substitute(t.PushBody, vars)
	if body == "" {
		body = Substitute(t.EmailBodyText, vars)
	}
	if body == "" {
		body = StripHTML(Substitute(t.EmailBodyHTML, vars))
	}

	return PushContent{
		Title:     title,
		Body:      body,
		ImageURL:  Substitute(t.PushImageURL, vars),
		ActionURL: Substitute(t.PushActionURL, vars),
	}
}

var (
	tagRegex        = regexp.MustCompile(`<[^>]*>`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// entityReplacer decodes the handful of entities that show up in stored
// email bodies. Full entity decoding is deliberately out of scope.
var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
)

// StripHTML converts an HTML email body into plain text suitable as a push
// body fallback: tags removed, common entities decoded, whitespace collapsed.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}
	s = tagRegex.ReplaceAllString(s, " ")
	s = entityReplacer.Replace(s)
	s = whitespaceRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
