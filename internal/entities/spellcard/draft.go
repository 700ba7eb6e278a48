package spellcard

// Draft is a card being edited. Drafts live outside the book until saved.
type Draft struct {
	ID   string     `json:"id"`
	Card *SpellCard `json:"card"`
	// SourceIndex is the book position the draft was opened from. Nil means
	// saving appends a new card.
	SourceIndex *int `json:"source_index,omitempty"`
	// SourceFingerprint is the Fingerprint of the book card when the draft
	// was opened. Saving refuses to replace a card that no longer matches.
	SourceFingerprint string `json:"source_fingerprint,omitempty"`
	// PendingHeightened holds kind and level chosen on the blank heightened
	// row before its text is entered.
	PendingHeightened *Heightened `json:"pending_heightened,omitempty"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
	ExpiresAt int64 `json:"expires_at"`
}

// NextHeightened is the entry shown on the blank row for adding one
func (d *Draft) NextHeightened() Heightened {
	if d.PendingHeightened != nil {
		return *d.PendingHeightened
	}
	return Heightened{Kind: HeightenedRepeat, Level: 1}
}
