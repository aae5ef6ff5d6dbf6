package web

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/dmitrijs2005/kitportal/internal/portal/models"
	"github.com/dmitrijs2005/kitportal/internal/portal/workflow"
)

type accountForm struct {
	FirstName   string `form:"first_name"`
	LastName    string `form:"last_name"`
	Email       string `form:"email"`
	Street      string `form:"street"`
	City        string `form:"city"`
	State       string `form:"state"`
	PostCode    string `form:"post_code"`
	CountryCode string `form:"country_code"`
	KitName     string `form:"kit_name"`
}

func (f accountForm) newAccount() models.NewAccount {
	return models.NewAccount{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		Address: models.Address{
			Street:      f.Street,
			City:        f.City,
			State:       f.State,
			PostCode:    f.PostCode,
			CountryCode: f.CountryCode,
		},
		KitName: f.KitName,
	}
}

// formFields returns every submitted url-encoded field, last value wins.
func formFields(c fiber.Ctx) map[string]string {
	fields := map[string]string{}
	c.Request().PostArgs().VisitAll(func(k, v []byte) {
		fields[string(k)] = string(v)
	})
	return fields
}

func (s *Server) getRoot(c fiber.Ctx) error {
	return redirect(c, workflow.RouteHome)
}

func (s *Server) getHome(c fiber.Ctx) error {
	p := page{Title: "Home", LoginURL: s.opts.LoginURL}

	if id := identityFrom(c); id != nil {
		snap, err := workflow.Determine(c.Context(), s.api)
		if err != nil {
			return err
		}
		p.UserName = id.Name
		p.AccountID = snap.AccountID
		p.ShowWizard = snap.State != workflow.AllDone
	}

	return s.render(c, fiber.StatusOK, "home.html", p)
}

func (s *Server) getAuthRocketCallback(c fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing token")
	}
	if _, err := s.verifier.Parse(token); err != nil {
		s.logger.Warn(c.Context(), "login token rejected", "error", err.Error())
		return fiber.NewError(fiber.StatusUnauthorized, "login token rejected")
	}

	sess := sessionFrom(c)
	sess.Token = token
	if err := s.sessions.Save(c, sess); err != nil {
		return err
	}
	return redirect(c, workflow.RouteHome)
}

func (s *Server) getLogout(c fiber.Ctx) error {
	sess := sessionFrom(c)
	sess.Token = ""
	if err := s.sessions.Save(c, sess); err != nil {
		return err
	}
	return redirect(c, workflow.RouteHome)
}

func (s *Server) getWorkflow(c fiber.Ctx) error {
	snap := snapshotFrom(c)
	if snap.State == workflow.NeedsReroute {
		return s.reroute(c, snap.Reroute)
	}
	return redirect(c, snap.Next())
}

func (s *Server) getCreateAccount(c fiber.Ctx) error {
	p := page{Title: "Create account"}
	if id := identityFrom(c); id != nil {
		p.Email = id.Email
	}
	return s.render(c, fiber.StatusOK, "create_acct.html", p)
}

func (s *Server) postCreateAccount(c fiber.Ctx) error {
	var f accountForm
	if err := c.Bind().Form(&f); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid account form")
	}

	sess := sessionFrom(c)
	sess.KitName = f.KitName
	if err := s.sessions.Save(c, sess); err != nil {
		return err
	}

	acct, err := s.api.CreateAccount(c.Context(), f.newAccount())
	if err != nil {
		return s.apiError(c, err)
	}
	s.logger.Info(c.Context(), "account created", "account_id", acct.AccountID)

	return redirect(c, workflow.RouteWorkflow)
}

func (s *Server) getCreateHumanSource(c fiber.Ctx) error {
	snap := snapshotFrom(c)
	consent, err := s.api.GetConsent(c.Context(), snap.AccountID, s.opts.ConsentPostURL)
	if err != nil {
		return s.apiError(c, err)
	}
	c.Type("html", "utf-8")
	return c.SendString(consent.ConsentHTML)
}

func (s *Server) postCreateHumanSource(c fiber.Ctx) error {
	snap := snapshotFrom(c)
	if err := s.api.SubmitConsent(c.Context(), snap.AccountID, formFields(c)); err != nil {
		return s.apiError(c, err)
	}
	return redirect(c, workflow.RouteWorkflow)
}

func (s *Server) getClaimKitSamples(c fiber.Ctx) error {
	if kit := sessionFrom(c).KitName; kit != "" {
		return s.claimKit(c, kit)
	}
	return s.render(c, fiber.StatusOK, "kit_sample_association.html", page{Title: "Claim kit"})
}

func (s *Server) postClaimKitSamples(c fiber.Ctx) error {
	kit := strings.TrimSpace(c.FormValue("kit_name"))
	if kit == "" {
		return s.render(c, fiber.StatusBadRequest, "kit_sample_association.html", page{
			Title:   "Claim kit",
			Message: "Please enter the name printed on your kit.",
		})
	}
	return s.claimKit(c, kit)
}

// claimKit associates every unclaimed sample of kit with the human source.
// The first failure stops the loop; samples already associated stay so.
func (s *Server) claimKit(c fiber.Ctx, kit string) error {
	snap := snapshotFrom(c)

	samples, err := s.api.ListKitSamples(c.Context(), kit)
	if err != nil {
		return s.apiError(c, err)
	}
	if len(samples) == 0 {
		return s.askForKit(c, kit)
	}
	for _, sample := range samples {
		if err := s.api.AssociateSample(c.Context(), snap.AccountID, snap.HumanSourceID, sample.SampleID); err != nil {
			return s.apiError(c, err)
		}
	}
	s.logger.Info(c.Context(), "kit claimed", "kit_name", kit, "samples", len(samples))

	return redirect(c, workflow.RouteWorkflow)
}

// askForKit forgets a kit that has nothing left to claim and shows the
// kit-name form, so the GET auto-claim cannot bounce back to /workflow.
func (s *Server) askForKit(c fiber.Ctx, kit string) error {
	sess := sessionFrom(c)
	if sess.KitName != "" {
		sess.KitName = ""
		if err := s.sessions.Save(c, sess); err != nil {
			return err
		}
	}
	s.logger.Info(c.Context(), "kit has no unclaimed samples", "kit_name", kit)

	return s.render(c, fiber.StatusOK, "kit_sample_association.html", page{
		Title:   "Claim kit",
		Message: "We could not find any unclaimed samples in kit " + kit + ". Please check the name printed on your kit.",
	})
}

func (s *Server) getFillPrimarySurvey(c fiber.Ctx) error {
	snap := snapshotFrom(c)
	tmpl, err := s.api.GetSurveyTemplate(c.Context(), snap.AccountID, snap.HumanSourceID, workflow.PrimarySurveyTemplateID)
	if err != nil {
		return s.apiError(c, err)
	}

	schema := string(tmpl.SurveyTemplateText)
	if schema == "" {
		schema = "{}"
	}
	return s.render(c, fiber.StatusOK, "survey.html", page{
		Title:  "Survey",
		Action: workflow.RouteFillPrimarySurvey,
		Schema: schema,
		Model:  "{}",
	})
}

func (s *Server) postFillPrimarySurvey(c fiber.Ctx) error {
	snap := snapshotFrom(c)
	answers := models.SurveyAnswers{
		SurveyTemplateID: workflow.PrimarySurveyTemplateID,
		SurveyText:       formFields(c),
	}
	if err := s.api.SubmitSurvey(c.Context(), snap.AccountID, snap.HumanSourceID, answers); err != nil {
		return s.apiError(c, err)
	}
	return redirect(c, workflow.RouteWorkflow)
}

func (s *Server) getSource(c fiber.Ctx) error {
	accountID, sourceID := c.Params("account_id"), c.Params("source_id")

	samples, err := s.api.ListSamples(c.Context(), accountID, sourceID)
	if err != nil {
		return s.apiError(c, err)
	}
	return s.render(c, fiber.StatusOK, "source.html", page{
		Title:      "Samples",
		Samples:    samples,
		SourcePath: workflow.SourcePath(accountID, sourceID),
	})
}

func (s *Server) getSample(c fiber.Ctx) error {
	accountID, sourceID, sampleID := c.Params("account_id"), c.Params("source_id"), c.Params("sample_id")

	sample, err := s.api.GetSample(c.Context(), accountID, sourceID, sampleID)
	if err != nil {
		return s.apiError(c, err)
	}

	form := sampleSchema()
	schema, err := toJSON(form)
	if err != nil {
		return err
	}
	model, err := toJSON(sampleModel(form, sample))
	if err != nil {
		return err
	}

	return s.render(c, fiber.StatusOK, "sample.html", page{
		Title:  "Sample",
		Action: workflow.SourcePath(accountID, sourceID) + "/samples/" + url.PathEscape(sampleID),
		Schema: schema,
		Model:  model,
		Sample: sample,
	})
}

// putSample serves both POST (browser forms) and PUT. Only the form's
// editable fields are sent on.
func (s *Server) putSample(c fiber.Ctx) error {
	accountID, sourceID, sampleID := c.Params("account_id"), c.Params("source_id"), c.Params("sample_id")

	fields := editableValues(sampleSchema(), formFields(c))
	if err := s.api.UpdateSample(c.Context(), accountID, sourceID, sampleID, fields); err != nil {
		return s.apiError(c, err)
	}
	return redirect(c, workflow.SourcePath(accountID, sourceID))
}
