// Package meetings provisions video-call rooms for learning sessions.
package meetings

import (
	"context"
	"fmt"
	"strings"

	"github.com/anjiri1684/skill_swap/models"
	"github.com/anjiri1684/skill_swap/utils"
)

const roomCodeLength = 10

// Provisioner returns a join link for a session that is about to be created.
type Provisioner interface {
	Provision(ctx context.Context, s models.Session) (string, error)
}

// Jitsi builds public Jitsi-style room links under BaseURL. No API call is made.
type Jitsi struct {
	BaseURL string
}

func NewJitsi(baseURL string) Jitsi {
	return Jitsi{BaseURL: strings.TrimRight(baseURL, "/")}
}

func (j Jitsi) Provision(ctx context.Context, s models.Session) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if j.BaseURL == "" {
		return "", fmt.Errorf("meeting base url not configured")
	}
	return fmt.Sprintf("%s/skillswap-%s", j.BaseURL, utils.RandomCode(roomCodeLength)), nil
}
