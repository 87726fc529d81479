package packinglist

import (
	"strconv"
	"strings"

	"github.com/Aashish23092/supplier-doc-extractor/dto"
	"github.com/Aashish23092/supplier-doc-extractor/utils/layout"
	"github.com/Aashish23092/supplier-doc-extractor/utils/policy"
)

type State int

const (
	AwaitingGroup State = iota
	Active
)

func (s State) String() string {
	if s == Active {
		return "ACTIVE"
	}
	return "AWAITING_GROUP"
}

// Classifier walks the calibrated rows of one document and emits item
// records under the most recently seen group header. Use one Classifier per
// document.
type Classifier struct {
	policy   *policy.Compiled
	state    State
	parcelID string
}

func NewClassifier(p *policy.Compiled) *Classifier {
	return &Classifier{policy: p, state: AwaitingGroup}
}

func (c *Classifier) State() State { return c.state }

// ParcelID returns the current group id, or "" before the first group header.
func (c *Classifier) ParcelID() string { return c.parcelID }

// Classify processes one row lying below the page header. A group header row
// may also yield an item.
func (c *Classifier) Classify(row layout.VisualRow, h layout.Header) (dto.PackingItemRecord, bool) {
	if id, ok := c.groupID(row); ok {
		c.parcelID = id
		c.state = Active
	}

	if c.isSkipRow(row) {
		return dto.PackingItemRecord{}, false
	}

	if c.state == AwaitingGroup {
		return dto.PackingItemRecord{}, false
	}

	material, ok := c.material(row, h.Material)
	if !ok {
		return dto.PackingItemRecord{}, false
	}
	qty, ok := c.quantity(row, h.Quantity)
	if !ok {
		return dto.PackingItemRecord{}, false
	}

	return dto.PackingItemRecord{
		ParcelID:   c.parcelID,
		MaterialNo: material,
		Quantity:   qty,
	}, true
}

func (c *Classifier) groupID(row layout.VisualRow) (string, bool) {
	var id string
	hasKeyword := false
	for _, t := range row.Tokens {
		text := strings.TrimSpace(t.Text)
		if id == "" && c.policy.GroupID.MatchString(text) {
			id = text
		}
		lower := strings.ToLower(text)
		for _, kw := range c.policy.GroupKeywords {
			if strings.Contains(lower, kw) {
				hasKeyword = true
				break
			}
		}
	}
	return id, id != "" && hasKeyword
}

func (c *Classifier) isSkipRow(row layout.VisualRow) bool {
	text := row.Text()
	for _, re := range c.policy.Skip {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// material picks the leftmost in-window material number.
func (c *Classifier) material(row layout.VisualRow, w layout.ColumnWindow) (string, bool) {
	for _, t := range row.Tokens {
		text := strings.TrimSpace(t.Text)
		if w.Contains(t.X0) && c.policy.Material.MatchString(text) {
			return text, true
		}
	}
	return "", false
}

// quantity picks the rightmost in-window digit token within the allowed
// magnitude.
func (c *Classifier) quantity(row layout.VisualRow, w layout.ColumnWindow) (int, bool) {
	for i := len(row.Tokens) - 1; i >= 0; i-- {
		t := row.Tokens[i]
		text := strings.TrimSpace(t.Text)
		if !w.Contains(t.X0) || !c.policy.PackingQuantity.MatchString(text) {
			continue
		}
		n, err := strconv.Atoi(text)
		if err != nil {
			continue
		}
		if c.policy.MaxQuantity > 0 && n > c.policy.MaxQuantity {
			continue
		}
		return n, true
	}
	return 0, false
}
