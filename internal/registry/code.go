package registry

import (
	"strings"

	"github.com/roastme-app/battle-service/internal/domain"
)

// Room codes avoid visually confusable characters (I, O, 0, 1).
const (
	codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	codeLength   = 6
)

// generateCode returns a code unused by any active room. Callers hold r.mu.
func (r *Registry) generateCode() string {
	buf := make([]byte, codeLength)
	for {
		for i := range buf {
			buf[i] = codeAlphabet[r.rand.Intn(len(codeAlphabet))]
		}
		code := string(buf)
		if _, taken := r.rooms[code]; !taken {
			return code
		}
	}
}

// NormalizeCode upper-cases a client-supplied room code and rejects
// malformed shapes before any map lookup.
func NormalizeCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != codeLength {
		return "", domain.ErrInvalidCode
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return "", domain.ErrInvalidCode
		}
	}
	return code, nil
}
