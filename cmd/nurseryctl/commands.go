// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/chiilog/nursery-visits/core"
)

func listCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	nurseries, err := db.NurseryRepository().GetAllNurseries(c.Context)
	if err != nil {
		return err
	}
	if len(nurseries) == 0 {
		fmt.Println("no nurseries stored")
		return nil
	}

	for _, nursery := range nurseries {
		fmt.Printf("%s  %s\n", nursery.ID, nursery.Name)
		for i := range nursery.VisitSessions {
			session := &nursery.VisitSessions[i]
			date := "unscheduled"
			if session.VisitDate != nil {
				date = session.VisitDate.Format("2006-01-02")
			}
			fmt.Printf("  %s  %s (%s)\n", session.ID, date, session.Status)
			for j := range session.Questions {
				question := &session.Questions[j]
				mark := " "
				if question.IsAnswered {
					mark = "x"
				}
				fmt.Printf("    [%s] %s  %s\n", mark, question.ID, question.Text)
			}
			for _, insight := range session.Insights {
				fmt.Printf("    - %s\n", insight)
			}
		}
	}
	return nil
}

func addNurseryCommand(c *cli.Context) error {
	input := core.CreateNurseryInput{
		Name:        c.String("name"),
		Address:     c.String("address"),
		PhoneNumber: c.String("phone"),
		Website:     c.String("website"),
		Notes:       c.String("notes"),
	}
	if err := core.ValidateNursery(&core.Nursery{Name: input.Name}); err != nil {
		return err
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := db.NurseryRepository().CreateNursery(c.Context, input)
	if err != nil {
		return err
	}
	fmt.Println(id)
	return nil
}

func addSessionCommand(c *cli.Context) error {
	visitDate, err := parseVisitDate(c.String("date"))
	if err != nil {
		return err
	}
	status := core.SessionStatus(c.String("status"))
	if err := core.ValidateSessionStatus(status); err != nil {
		return err
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := db.NurseryRepository().CreateVisitSession(c.Context, c.String("nursery"), core.CreateVisitSessionInput{
		VisitDate: visitDate,
		Status:    status,
		Notes:     c.String("notes"),
	})
	if err != nil {
		return err
	}
	fmt.Println(id)
	return nil
}

func addInsightCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	return db.NurseryRepository().AddInsight(c.Context, c.String("session"), c.String("text"))
}

func addQuestionCommand(c *cli.Context) error {
	input := core.CreateQuestionInput{
		Text:       c.String("text"),
		Category:   c.String("category"),
		Priority:   core.QuestionPriority(c.String("priority")),
		OrderIndex: c.Int("order"),
	}
	if err := core.ValidateQuestion(&core.Question{Text: input.Text}); err != nil {
		return err
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := db.NurseryRepository().AddQuestion(c.Context, c.String("nursery"), c.String("session"), input)
	if err != nil {
		return err
	}
	fmt.Println(id)
	return nil
}

func answerQuestionCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	answer := c.String("answer")
	update := core.QuestionUpdate{Answer: &answer}
	if by := c.String("by"); by != "" {
		update.AnsweredBy = &by
	}
	return db.NurseryRepository().UpdateQuestion(c.Context,
		c.String("nursery"), c.String("session"), c.String("question"), update)
}

func searchCommand(c *cli.Context) error {
	query := c.Args().First()
	if query == "" {
		return fmt.Errorf("usage: nurseryctl search <query>")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	searcher, err := db.NewSearcher()
	if err != nil {
		return err
	}
	matches, err := searcher.Search(c.Context, query, c.Int("max"))
	if err != nil {
		return err
	}

	for _, match := range matches {
		fmt.Printf("%s (%s/%s): %s\n", match.Nursery.Name, match.Kind, match.Field, match.Value)
	}
	fmt.Printf("%d hit(s)\n", len(matches))
	return nil
}

func exportCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	exporter, err := db.NewExporter()
	if err != nil {
		return err
	}
	return exporter.ExportFile(c.Context, c.String("out"))
}

func importCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("usage: nurseryctl import <file>...")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	importer, err := db.NewImporter()
	if err != nil {
		return err
	}
	defer importer.Release()

	count, err := importer.ImportFiles(c.Context, c.Args().Slice()...)
	if err != nil {
		return err
	}
	fmt.Printf("imported %d nursery(ies)\n", count)
	return nil
}

func consentStatusCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	consent := db.ConsentRepository()
	settings, err := consent.LoadSettings(c.Context)
	if err != nil {
		return err
	}
	valid, err := consent.IsConsentValid(c.Context)
	if err != nil {
		return err
	}
	legacy, err := consent.LegacyConsent(c.Context)
	if err != nil {
		return err
	}

	fmt.Printf("googleAnalytics:  %t\n", settings.GoogleAnalytics)
	fmt.Printf("microsoftClarity: %t\n", settings.MicrosoftClarity)
	fmt.Printf("consentTimestamp: %s\n", settings.ConsentTimestamp.Format("2006-01-02 15:04:05"))
	fmt.Printf("consentVersion:   %s\n", settings.ConsentVersion)
	fmt.Printf("valid:            %t\n", valid)
	if legacy != "" {
		fmt.Printf("legacy flag:      %s\n", legacy)
	}
	return nil
}

func consentAcceptCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	consent := db.ConsentRepository()
	if err := consent.SaveSettings(c.Context, &core.PrivacySettings{
		GoogleAnalytics:  c.Bool("analytics"),
		MicrosoftClarity: c.Bool("clarity"),
	}); err != nil {
		return err
	}
	return consent.SetLegacyConsent(c.Context, core.ConsentAccepted)
}

func consentDeclineCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	consent := db.ConsentRepository()
	if err := consent.SaveSettings(c.Context, &core.PrivacySettings{}); err != nil {
		return err
	}
	return consent.SetLegacyConsent(c.Context, core.ConsentDeclined)
}

func consentRevokeCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	return db.ConsentRepository().ClearSettings(c.Context)
}
