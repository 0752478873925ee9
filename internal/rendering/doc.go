package rendering

import (
	"html/template"
	"strings"

	"github.com/jonathan/cv-builder/internal/types"
)

// Word opens HTML carrying the Office namespaces as a native .doc document.
const wordPrefix = `<html xmlns:o="urn:schemas-microsoft-com:office:office" ` +
	`xmlns:w="urn:schemas-microsoft-com:office:word" ` +
	`xmlns="http://www.w3.org/TR/REC-html40">` +
	`<head><meta charset="utf-8"><title>`

const wordSuffix = `</body></html>`

// RenderDoc renders the Word-compatible HTML blob served as application/msword.
func RenderDoc(cv *types.CVData) ([]byte, error) {
	body, err := renderHTMLBody(cv)
	if err != nil {
		return nil, err
	}
	var b strings.Builder
	b.WriteString(wordPrefix)
	b.WriteString(template.HTMLEscapeString(NewDocument(cv).Title()))
	b.WriteString(`</title></head><body>`)
	b.WriteString(body)
	b.WriteString(wordSuffix)
	return []byte(b.String()), nil
}
