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


// Seeder populates a database with sample visit data for development.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	nurseryvisits "github.com/chiilog/nursery-visits"
	"github.com/chiilog/nursery-visits/core"
)

type seedQuestion struct {
	text     string
	category string
	answer   string
}

type seedSession struct {
	daysFromNow int
	status      core.SessionStatus
	notes       string
	questions   []seedQuestion
	insights    []string
}

type seedNursery struct {
	name     string
	address  string
	phone    string
	website  string
	notes    string
	sessions []seedSession
}

var seedData = []seedNursery{
	{
		name:    "さくら保育園",
		address: "東京都世田谷区桜1-2-3",
		phone:   "03-1234-5678",
		website: "https://sakura-hoikuen.example.jp",
		notes:   "駅から徒歩5分。園庭が広い。",
		sessions: []seedSession{
			{
				daysFromNow: -14,
				status:      core.SessionStatusCompleted,
				notes:       "園長先生が案内してくれた",
				questions: []seedQuestion{
					{text: "延長保育はありますか？", category: "保育時間", answer: "19時まで対応しています"},
					{text: "給食はアレルギー対応していますか？", category: "給食"},
					{text: "慣らし保育の期間はどれくらいですか？", category: "入園準備", answer: "2週間が目安です"},
				},
				insights: []string{"先生たちの雰囲気がとても良い", "0歳児クラスは定員まで残りわずか"},
			},
			{
				daysFromNow: 21,
				status:      core.SessionStatusPlanned,
				notes:       "運動会の見学を兼ねて",
				questions: []seedQuestion{
					{text: "保護者参加の行事は年に何回ありますか？", category: "行事"},
				},
			},
		},
	},
	{
		name:    "ひまわり保育園",
		address: "東京都杉並区向日葵4-5-6",
		phone:   "03-9876-5432",
		notes:   "英語教育に力を入れている",
		sessions: []seedSession{
			{
				daysFromNow: 7,
				status:      core.SessionStatusPlanned,
				questions: []seedQuestion{
					{text: "おむつは布ですか紙ですか？", category: "持ち物"},
					{text: "お昼寝布団は持参ですか？", category: "持ち物"},
				},
			},
		},
	},
	{
		name:  "たんぽぽ保育園",
		notes: "まだ見学の予約をしていない",
	},
}

var dbPath = flag.String("db", "nursery-data", "path to the database directory")

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

func main() {
	db, err := nurseryvisits.NewDatabase(*dbPath)
	if err != nil {
		slog.Error("error opening database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()
	repo := db.NurseryRepository()
	now := time.Now().UTC()

	for _, n := range seedData {
		nurseryID, err := repo.CreateNursery(ctx, core.CreateNurseryInput{
			Name:        n.name,
			Address:     n.address,
			PhoneNumber: n.phone,
			Website:     n.website,
			Notes:       n.notes,
		})
		if err != nil {
			slog.Error("error creating nursery", "name", n.name, "err", err)
			os.Exit(1)
		}

		for _, s := range n.sessions {
			visitDate := now.AddDate(0, 0, s.daysFromNow)
			sessionID, err := repo.CreateVisitSession(ctx, nurseryID, core.CreateVisitSessionInput{
				VisitDate: &visitDate,
				Status:    s.status,
				Notes:     s.notes,
			})
			if err != nil {
				slog.Error("error creating session", "nursery", n.name, "err", err)
				os.Exit(1)
			}

			for i, q := range s.questions {
				questionID, err := repo.AddQuestion(ctx, nurseryID, sessionID, core.CreateQuestionInput{
					Text:       q.text,
					Category:   q.category,
					OrderIndex: i,
				})
				if err != nil {
					slog.Error("error creating question", "nursery", n.name, "err", err)
					os.Exit(1)
				}
				if q.answer != "" {
					answer := q.answer
					err := repo.UpdateQuestion(ctx, nurseryID, sessionID, questionID, core.QuestionUpdate{
						Answer: &answer,
					})
					if err != nil {
						slog.Error("error answering question", "nursery", n.name, "err", err)
						os.Exit(1)
					}
				}
			}

			for _, insight := range s.insights {
				if err := repo.AddInsight(ctx, sessionID, insight); err != nil {
					slog.Error("error recording insight", "nursery", n.name, "err", err)
					os.Exit(1)
				}
			}
		}

		slog.Info("seeded nursery", "name", n.name, "id", nurseryID)
	}
}
