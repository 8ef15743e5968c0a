package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/sessionkeeper/internal/client/session"
	"github.com/dmitrijs2005/sessionkeeper/internal/common"
)

// nowFn is a test seam for the clock used by Status.
var nowFn = time.Now

// WhoAmI prints the account profile, fetching it if the cached one is stale.
func (a *App) WhoAmI(ctx context.Context) error {
	p, err := a.session.Profile(ctx)
	if err != nil {
		if errors.Is(err, session.ErrNotAuthenticated) {
			printlnFn("Not logged in")
			return nil
		}
		printlnFn("Could not load profile:", common.DisplayMessage(err, "unknown error"))
		return nil
	}

	printlnFn("Email:  ", p.Email)
	printlnFn("Name:   ", p.DisplayName())
	printlnFn("Type:   ", string(p.AccountType))
	if p.Disabled {
		printlnFn("Status:  disabled")
	}
	if org, ok := p.DefaultOrganization(); ok {
		printlnFn("Org:    ", org.Name)
	}
	for _, org := range p.Organizations {
		printlnFn(fmt.Sprintf("  - %s (%d projects)", org.Name, len(org.Projects)))
	}
	return nil
}

// Refresh schedules a profile refetch in the background.
func (a *App) Refresh(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not logged in")
		return nil
	}
	a.session.RefetchProfile()
	printlnFn("Profile refresh scheduled")
	return nil
}

// Status prints the session state and, for JWT tokens, the subject and the
// time left until expiry.
func (a *App) Status(ctx context.Context) error {
	printlnFn("Session:", a.session.State().String())
	if !a.isLoggedIn() {
		return nil
	}

	claims, err := a.session.Claims()
	if err != nil {
		a.log.Debug(ctx, "token claims unavailable", "error", err)
		return nil
	}

	if claims.Subject != "" {
		printlnFn("Subject:", claims.Subject)
	}
	if left, ok := claims.ExpiresIn(nowFn()); ok {
		if left <= 0 {
			printlnFn("Token:   expired")
		} else {
			printlnFn("Token:   expires in", left.Round(time.Second).String())
		}
	}
	return nil
}
