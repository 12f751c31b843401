package domain

import (
	"strings"
	"time"
)

// AccountPatch is a partial profile update. Nil or blank fields are left
// alone; there is no way to clear a field through a patch.
type AccountPatch struct {
	Name     *string
	Phone    *string
	Birthday *string
}

// Apply reports whether anything changed and bumps UpdatedAt if so.
func (p AccountPatch) Apply(a *Account, now time.Time) bool {
	changed := overwrite(&a.Name, p.Name)
	changed = overwrite(&a.Phone, p.Phone) || changed
	changed = overwrite(&a.Birthday, p.Birthday) || changed
	if changed {
		a.UpdatedAt = now
	}
	return changed
}

// ProjectPatch follows the same rules as AccountPatch.
type ProjectPatch struct {
	Name    *string
	Payload *string
	QRImage *string
	FgColor *string
	BgColor *string
}

// ColorsOnly drops everything except the appearance fields.
func (p ProjectPatch) ColorsOnly() ProjectPatch {
	return ProjectPatch{QRImage: p.QRImage, FgColor: p.FgColor, BgColor: p.BgColor}
}

func (p ProjectPatch) Apply(pr *Project, now time.Time) bool {
	changed := overwrite(&pr.Name, p.Name)
	changed = overwrite(&pr.Payload, p.Payload) || changed
	changed = overwrite(&pr.QRImage, p.QRImage) || changed
	changed = overwrite(&pr.FgColor, p.FgColor) || changed
	changed = overwrite(&pr.BgColor, p.BgColor) || changed
	if changed {
		pr.UpdatedAt = now
	}
	return changed
}

func overwrite(dst *string, v *string) bool {
	if v == nil {
		return false
	}
	val := strings.TrimSpace(*v)
	if val == "" || val == *dst {
		return false
	}
	*dst = val
	return true
}
