// Package fields builds classifier input from raw form controls.
package fields

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/apply-assistant/internal/types"
)

// RawControl is an interactive form control as observed on a page, before normalization.
type RawControl struct {
	Ref         string `json:"ref"`
	Tag         string `json:"tag"`
	Type        string `json:"type,omitempty"`
	Name        string `json:"name,omitempty"`
	ID          string `json:"id,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
	Label       string `json:"label,omitempty"`
	AriaLabel   string `json:"aria_label,omitempty"`
}

// Build normalizes a raw control into a FieldDescriptor.
// The signature joins name, id, placeholder, label and aria-label with single
// spaces (empty parts keep their separator) and lower-cases the result.
func Build(c RawControl) types.FieldDescriptor {
	signature := strings.Join([]string{
		c.Name,
		c.ID,
		c.Placeholder,
		c.Label,
		c.AriaLabel,
	}, " ")

	return types.FieldDescriptor{
		ControlRef: c.Ref,
		Kind:       types.ParseControlKind(c.Tag, c.Type),
		Signature:  strings.ToLower(signature),
	}
}

// BuildAll normalizes controls in order.
func BuildAll(controls []RawControl) []types.FieldDescriptor {
	out := make([]types.FieldDescriptor, 0, len(controls))
	for _, c := range controls {
		out = append(out, Build(c))
	}
	return out
}

// ControlsFromHTML returns every input, textarea and select element of an HTML
// document in document order, with associated label text resolved.
func ControlsFromHTML(html string) ([]RawControl, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var controls []RawControl
	doc.Find("input, textarea, select").Each(func(i int, s *goquery.Selection) {
		tag := goquery.NodeName(s)
		id, _ := s.Attr("id")
		name, _ := s.Attr("name")
		inputType, _ := s.Attr("type")
		placeholder, _ := s.Attr("placeholder")
		ariaLabel, _ := s.Attr("aria-label")

		controls = append(controls, RawControl{
			Ref:         controlRef(i, tag, id, name),
			Tag:         tag,
			Type:        inputType,
			Name:        name,
			ID:          id,
			Placeholder: placeholder,
			Label:       labelText(doc, s, id),
			AriaLabel:   ariaLabel,
		})
	})

	return controls, nil
}

// FromHTML parses an HTML document and returns one FieldDescriptor per control.
func FromHTML(html string) ([]types.FieldDescriptor, error) {
	controls, err := ControlsFromHTML(html)
	if err != nil {
		return nil, err
	}
	return BuildAll(controls), nil
}

// labelText finds the label associated with a control: a label whose for
// attribute names the control's id, otherwise the nearest enclosing label.
func labelText(doc *goquery.Document, s *goquery.Selection, id string) string {
	if id != "" {
		forLabel := doc.Find("label").FilterFunction(func(_ int, l *goquery.Selection) bool {
			target, ok := l.Attr("for")
			return ok && target == id
		})
		if forLabel.Length() > 0 {
			return forLabel.First().Text()
		}
	}

	if parent := s.Closest("label"); parent.Length() > 0 {
		return parent.Text()
	}
	return ""
}

// controlRef names a control by tag and id or name, suffixed with its document
// index so refs stay unique when a page repeats an id or name.
func controlRef(index int, tag, id, name string) string {
	switch {
	case id != "":
		return fmt.Sprintf("%s#%s@%d", tag, id, index)
	case name != "":
		return fmt.Sprintf("%s[name=%s]@%d", tag, name, index)
	default:
		return fmt.Sprintf("%s@%d", tag, index)
	}
}
