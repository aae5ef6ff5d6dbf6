package leads

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/kitportal/internal/common"
	"github.com/dmitrijs2005/kitportal/internal/leads/models"
	"github.com/dmitrijs2005/kitportal/internal/leads/services"
	"github.com/google/uuid"
)

// leadService is the surface of services.InterestedUserService the console
// drives. Tests provide a stub.
type leadService interface {
	Register(ctx context.Context, u *models.InterestedUser) (string, error)
	VerifyAddress(ctx context.Context, id string) (models.AddressStatus, error)
	Get(ctx context.Context, id string) (*models.InterestedUser, error)
	VerifyPending(ctx context.Context) (services.VerifyReport, error)
}

// Console is the interactive operator shell.
type Console struct {
	service leadService
	reader  *bufio.Reader
	out     io.Writer
}

func NewConsole(s leadService, in io.Reader, out io.Writer) *Console {
	return &Console{service: s, reader: bufio.NewReader(in), out: out}
}

// Run reads commands until EOF, exit/quit, or ctx is cancelled.
//
//	help                 show available commands
//	add                  register a lead (interactive)
//	show <id>            print a lead
//	verify <id>          verify one lead's address
//	pending              verify every lead not yet checked
//	exit | quit          leave the program
//
// Command failures are printed and the loop continues.
func (c *Console) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprint(c.out, "leads> ")
		line, err := c.reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			fmt.Fprintln(c.out, "Available commands: add, show <id>, verify <id>, pending, exit")
		case "add":
			c.report(c.add(ctx))
		case "show":
			c.report(c.withID(args, "show", func(id string) error { return c.show(ctx, id) }))
		case "verify":
			c.report(c.withID(args, "verify", func(id string) error { return c.verify(ctx, id) }))
		case "pending":
			c.report(c.pending(ctx))
		case "exit", "quit":
			fmt.Fprintln(c.out, "Bye!")
			return
		default:
			fmt.Fprintln(c.out, "Unknown command:", cmd)
		}
	}
}

func (c *Console) report(err error) {
	if err != nil {
		fmt.Fprintln(c.out, "Error:", err)
	}
}

func (c *Console) withID(args []string, cmd string, fn func(string) error) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: %s <id>", cmd)
	}
	return fn(args[0])
}

func (c *Console) add(ctx context.Context) error {
	u := &models.InterestedUser{}

	campaign, err := GetSimpleText(c.reader, "Campaign ID", c.out)
	if err != nil {
		return err
	}
	if u.CampaignID, err = uuid.Parse(campaign); err != nil {
		return fmt.Errorf("campaign id: %w", err)
	}

	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Acquisition source", &u.AcquisitionSource},
		{"First name", &u.FirstName},
		{"Last name", &u.LastName},
		{"Email", &u.Email},
		{"Phone", &u.Phone},
		{"Address line 1", &u.Address1},
		{"Address line 2", &u.Address2},
		{"City", &u.City},
		{"State", &u.State},
		{"Postal code", &u.PostalCode},
		{"Country", &u.Country},
	}
	for _, f := range fields {
		if *f.dst, err = GetSimpleText(c.reader, f.prompt, c.out); err != nil {
			return err
		}
	}

	if u.Over18, err = GetYesNo(c.reader, "Over 18?", c.out); err != nil {
		return err
	}
	if u.ConfirmConsent, err = GetYesNo(c.reader, "Consent confirmed?", c.out); err != nil {
		return err
	}

	id, err := c.service.Register(ctx, u)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Registered lead", id)
	return nil
}

func (c *Console) show(ctx context.Context, id string) error {
	u, err := c.service.Get(ctx, id)
	if errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("lead %s not found", id)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "%s  %s %s <%s>\n", u.ID, u.FirstName, u.LastName, u.Email)
	fmt.Fprintf(c.out, "  %s %s, %s %s %s, %s\n", u.Address1, u.Address2, u.City, u.State, u.PostalCode, u.Country)
	fmt.Fprintf(c.out, "  checked=%t valid=%t\n", u.AddressChecked, u.AddressValid)
	return nil
}

func (c *Console) verify(ctx context.Context, id string) error {
	status, err := c.service.VerifyAddress(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Lead %s: %s\n", id, status)
	return nil
}

func (c *Console) pending(ctx context.Context) error {
	r, err := c.service.VerifyPending(ctx)
	fmt.Fprintf(c.out, "Pending %d: valid %d, invalid %d, skipped %d\n", r.Pending, r.Valid, r.Invalid, r.Skipped)
	return err
}
