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
	"bufio"
	"context"
	"flag"
	"iter"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/marifa"
	"github.com/poiesic/marifa/ingestion"
)

// sample is one seed text and the source it is attributed to.
type sample struct {
	source string
	text   string
}

var samples = []sample{
	{"quran", "قال موسى لفرعون في مصر إن التقوى خير"},
	{"quran", "واصبر إن الصبر مع الإيمان وإن الرحمة قريبة"},
	{"quran", "وأقيموا الصلاة وآتوا الزكاة واعملوا بالعدل"},
	{"quran", "يا أيها الذين آمنوا كتب عليكم الصيام لعلكم تتقون"},
	{"quran", "وأحل الله البيع وحرم الربا"},
	{"quran", "إنما الخمر والميسر رجس فاجتنبوه"},
	{"quran", "ولقد أرسلنا نوح إلى قومه فلبث فيهم ألف سنة"},
	{"quran", "قال يوسف لأبيه إني رأيت أحد عشر كوكبا"},
	{"quran", "وإذ قال عيسى ابن مريم يا بني إسرائيل"},
	{"quran", "وإذ يرفع إبراهيم القواعد من البيت في مكة"},
	{"quran", "ونادى موسى ربه في سيناء فتلقى الحكمة"},
	{"hadith", "قال محمد إن الصدق يهدي إلى البر"},
	{"hadith", "خرج محمد في الهجرة من مكة إلى المدينة"},
	{"hadith", "التوبة تمحو ما قبلها والصبر ضياء"},
	{"hadith_sahih", "كانت بدر يوم الفرقان وظهرت فيها الشجاعة"},
	{"hadith_sahih", "دخل محمد المدينة بعد الهجرة فآخى بين الناس بالعدل"},
	{"tafsir", "التقوى أن تجعل بينك وبين عذاب الله وقاية"},
	{"tafsir", "الرحمة من صفات الله والحكمة من أسمائه"},
	{"unknown", "ذكر بعضهم أن فرعون حكم مصر زمنا طويلا"},
}

var (
	seedFileName = flag.String("src", "", "file of seed data, one text per line")
	seedSource   = flag.String("source", "seed", "source tag for texts read from -src")
	dbPath       = flag.String("db", "./marifa_db", "database directory")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// samplesFromFile returns an iterator over the non-empty lines of a file,
// each attributed to source.
func samplesFromFile(filename, source string) (iter.Seq[sample], error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	return func(yield func(sample) bool) {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if !yield(sample{source: source, text: line}) {
				return
			}
		}
	}, nil
}

// samplesFromSlice returns an iterator over a slice of samples.
func samplesFromSlice(s []sample) iter.Seq[sample] {
	return func(yield func(sample) bool) {
		for _, v := range s {
			if !yield(v) {
				return
			}
		}
	}
}

// ingestAll ingests every sample and waits for background verification.
func ingestAll(ctx context.Context, pipeline *ingestion.Pipeline, source iter.Seq[sample]) (int, error) {
	created := 0
	for s := range source {
		res, err := pipeline.Ingest(ctx, s.source, s.text, nil)
		if err != nil {
			return created, err
		}
		created += len(res.Created)
	}
	pipeline.Wait()
	return created, nil
}

func main() {
	db, err := marifa.NewDatabase(*dbPath)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	ingester, err := db.NewIngestionPipeline()
	if err != nil {
		panic(err)
	}
	defer ingester.Release()

	ctx := context.Background()

	// Determine source of seed data
	var source iter.Seq[sample]
	if *seedFileName != "" {
		source, err = samplesFromFile(*seedFileName, *seedSource)
		if err != nil {
			panic(err)
		}
	} else {
		source = samplesFromSlice(samples)
	}

	created, err := ingestAll(ctx, ingester, source)
	if err != nil {
		panic(err)
	}
	slog.Info("seeding complete", "nodes", created)
}
