package review

import "strings"

// Token is one recognized operator input. The interactive surface accepts
// exactly these four; anything else re-prompts.
type Token string

const (
	// TokenConfirm (bare Enter) accepts the default: confirm a TV group or
	// approve a film.
	TokenConfirm Token = ""
	// TokenReject sends a group back to film review or rejects a film.
	TokenReject Token = "n"
	// TokenList enumerates the current group's episodes. TV phase only.
	TokenList Token = "l"
	// TokenQuit ends the session immediately, keeping decisions made so far.
	TokenQuit Token = "q"
)

// ParseToken maps a raw input line to a token. ok is false for anything
// outside the recognized set.
func ParseToken(line string) (Token, bool) {
	switch Token(strings.ToLower(strings.TrimSpace(line))) {
	case TokenConfirm:
		return TokenConfirm, true
	case TokenReject:
		return TokenReject, true
	case TokenList:
		return TokenList, true
	case TokenQuit:
		return TokenQuit, true
	default:
		return "", false
	}
}
