package transaction

import (
	"math"
	"strings"
	"time"
)

const (
	// DefaultMaskToken prefixes the visible tail of a masked account number
	DefaultMaskToken = "•••"
	// DefaultPlaceholder stands in for any value that cannot be resolved
	DefaultPlaceholder = "—"

	isoMillis = "2006-01-02T15:04:05.000Z"
	maskTail  = 4
)

// Normalizer turns raw API records into display records.
// The zero value uses the default mask token, placeholder and wall clock.
type Normalizer struct {
	MaskToken   string
	Placeholder string
	Now         func() time.Time
}

// NewNormalizer returns a Normalizer with the given mask token and placeholder.
// Empty arguments fall back to the defaults.
func NewNormalizer(maskToken, placeholder string) *Normalizer {
	return &Normalizer{MaskToken: maskToken, Placeholder: placeholder}
}

// Normalize converts raw with the default Normalizer
func Normalize(raw Raw, perspectiveID string) Normalized {
	var n Normalizer
	return n.Normalize(raw, perspectiveID)
}

// NormalizeAll converts every record in raws from the perspective account
func (n *Normalizer) NormalizeAll(raws []Raw, perspectiveID string) []Normalized {
	out := make([]Normalized, 0, len(raws))
	for _, r := range raws {
		out = append(out, n.Normalize(r, perspectiveID))
	}
	return out
}

// Normalize converts a single raw record. It never fails: every field has a
// fallback, so partial input yields a fully populated record.
func (n *Normalizer) Normalize(raw Raw, perspectiveID string) Normalized {
	src, dst := raw.CompteSource, raw.CompteDestination
	placeholder := n.placeholder()

	sender := ResolveDisplayName(src, placeholder)
	receiver := ResolveDisplayName(dst, placeholder)
	t := Classify(raw.TransactionType)

	return Normalized{
		ID:              raw.ID,
		Date:            ResolveDate(raw.DateCreation, raw.DateUpdate, n.now()),
		Sender:          sender,
		Receiver:        receiver,
		SenderAccount:   ResolveAccountLabel(src, n.maskToken(), placeholder),
		ReceiverAccount: ResolveAccountLabel(dst, n.maskToken(), placeholder),
		Label:           sender + " → " + receiver,
		AccountType:     resolveAccountType(src, dst),
		Type:            t,
		Amount:          math.Abs(raw.Montant),
		Direction:       InferDirection(t, refID(src), refID(dst), perspectiveID),
	}
}

// ResolveDisplayName picks the holder's full name, then the account number,
// then the placeholder.
func ResolveDisplayName(ref *AccountRef, placeholder string) string {
	if ref == nil {
		return placeholder
	}
	if name := ownerName(ref.Proprietaire); name != "" {
		return name
	}
	if ref.Numero != "" {
		return ref.Numero
	}
	return placeholder
}

// ResolveAccountLabel picks the holder's identifier, then the holder's email,
// then the masked account number, then the placeholder.
func ResolveAccountLabel(ref *AccountRef, maskToken, placeholder string) string {
	if ref == nil {
		return placeholder
	}
	if o := ref.Proprietaire; o != nil {
		if o.Identifiant != "" {
			return o.Identifiant
		}
		if o.Email != "" {
			return o.Email
		}
	}
	if ref.Numero != "" {
		return MaskAccountNumber(ref.Numero, maskToken)
	}
	return placeholder
}

// MaskAccountNumber keeps the last four characters of number behind maskToken
func MaskAccountNumber(number, maskToken string) string {
	r := []rune(number)
	if len(r) > maskTail {
		r = r[len(r)-maskTail:]
	}
	return maskToken + string(r)
}

// ResolveDate returns the creation date, then the update date, then now
func ResolveDate(created, updated string, now time.Time) string {
	switch {
	case created != "":
		return created
	case updated != "":
		return updated
	default:
		return now.UTC().Format(isoMillis)
	}
}

func ownerName(o *Owner) string {
	if o == nil {
		return ""
	}
	return strings.TrimSpace(o.Prenom + " " + o.Nom)
}

func resolveAccountType(src, dst *AccountRef) string {
	if src != nil && src.TypeCompte != "" {
		return src.TypeCompte
	}
	if dst != nil {
		return dst.TypeCompte
	}
	return ""
}

func refID(ref *AccountRef) string {
	if ref == nil {
		return ""
	}
	return ref.ID
}

func (n *Normalizer) maskToken() string {
	if n.MaskToken == "" {
		return DefaultMaskToken
	}
	return n.MaskToken
}

func (n *Normalizer) placeholder() string {
	if n.Placeholder == "" {
		return DefaultPlaceholder
	}
	return n.Placeholder
}

func (n *Normalizer) now() time.Time {
	if n.Now == nil {
		return time.Now()
	}
	return n.Now()
}
