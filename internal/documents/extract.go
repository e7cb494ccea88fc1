package documents

import (
	"strings"

	"github.com/gen2brain/go-fitz"

	"github.com/entrevistaja/backend/internal/utils"
)

// ExtractText pulls plain text out of an uploaded PDF or Office document.
// go-fitz sniffs the format from the bytes, so callers do not need to pass
// the mime type.
func ExtractText(data []byte) (string, error) {
	const op = "documents.ExtractText"

	if len(data) == 0 {
		return "", utils.E(utils.CodeInvalidArgument, op, "empty document", nil)
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", utils.E(utils.CodeInvalidArgument, op, "unreadable document", err)
	}
	defer doc.Close()

	var b strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		text, err := doc.Text(i)
		if err != nil {
			return "", utils.E(utils.CodeInternal, op, "failed to extract page text", err)
		}
		b.WriteString(text)
		b.WriteString("\n")
	}

	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", utils.E(utils.CodeInvalidArgument, op, "document contains no extractable text", nil)
	}
	return out, nil
}
