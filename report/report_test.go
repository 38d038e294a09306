package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sharnoff/emojify"
	"github.com/sharnoff/emojify/glove"
	"github.com/sharnoff/emojify/models"
	"github.com/stretchr/testify/require"
)

func outcome(sentence string, expected, predicted emojify.Label) models.Outcome {
	probs := make([]float64, emojify.NumLabels)
	probs[predicted] = 0.75
	return models.Outcome{
		Prediction: models.Prediction{Sentence: sentence, Label: predicted, Probs: probs},
		Expected:   expected,
	}
}

func testEvaluation() models.Evaluation {
	ev := models.Evaluation{
		Cost: 0.5,
		Outcomes: []models.Outcome{
			outcome("i love you", emojify.Heart, emojify.Heart),
			outcome("lets play ball", emojify.Baseball, emojify.Baseball),
			outcome("i am so sad", emojify.Disappointed, emojify.Smile),
			outcome("lunch time", emojify.ForkAndKnife, emojify.ForkAndKnife),
		},
		Accuracy: 0.75,
	}

	for _, o := range ev.Outcomes {
		ev.Confusion[o.Expected][o.Label]++
	}

	return ev
}

func TestPredictions(t *testing.T) {
	req := require.New(t)

	var buf bytes.Buffer
	New(&buf, false).Predictions(testEvaluation().Outcomes)

	out := buf.String()
	req.Contains(out, "Sentence")
	req.Contains(out, "i am so sad")
	req.Equal(3, strings.Count(out, markCorrect))
	req.Equal(1, strings.Count(out, markIncorrect))
	req.Contains(out, emojify.Baseball.Emoji())
}

func TestMislabeled(t *testing.T) {
	req := require.New(t)
	var buf bytes.Buffer

	r := New(&buf, false)
	r.Mislabeled(testEvaluation())
	req.Equal("1 mislabeled:\n  i am so sad expected 😞, got 😄 (0.75)\n", buf.String())

	buf.Reset()
	r.Mislabeled(models.Evaluation{})
	req.Equal("No mislabeled sentences\n", buf.String())
}

func TestConfusion(t *testing.T) {
	req := require.New(t)

	var buf bytes.Buffer
	New(&buf, false).Confusion(testEvaluation())

	out := buf.String()
	for _, l := range emojify.Labels() {
		req.Contains(out, l.Name())
	}

	var row string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "disappointed") {
			row = line
		}
	}

	fields := strings.FieldsFunc(row, func(r rune) bool { return r == '|' })
	req.Len(fields, emojify.NumLabels+1)
	req.Equal("1", strings.TrimSpace(fields[1+int(emojify.Smile)]))
	req.Equal("0", strings.TrimSpace(fields[1+int(emojify.Disappointed)]))
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).Summary("Test", testEvaluation())
	require.Equal(t, "Test accuracy: 75.00% (3/4), cost 0.5000\n", buf.String())
}

func TestColours(t *testing.T) {
	req := require.New(t)

	var buf bytes.Buffer
	r := New(&buf, true)
	r.Summary("Train", testEvaluation())
	req.Contains(buf.String(), "75.00%")

	buf.Reset()
	r.Prediction(models.Prediction{Sentence: "food is ready", Label: emojify.ForkAndKnife})
	req.Equal("food is ready 🍴\n", buf.String())
}

func TestEvaluation(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).Evaluation("Test", testEvaluation())

	out := buf.String()
	require.Contains(t, out, "lunch time")
	require.Contains(t, out, "1 mislabeled:")
	require.True(t, strings.HasSuffix(out, "Test accuracy: 75.00% (3/4), cost 0.5000\n"))
}

func TestNeighbors(t *testing.T) {
	req := require.New(t)

	var buf bytes.Buffer
	New(&buf, false).Neighbors("love", []glove.Neighbor{{Word: "adore", Similarity: 0.91234}, {Word: "like", Similarity: 0.5}})

	out := buf.String()
	req.Contains(out, "Nearest to love")
	req.Contains(out, "0.9123")
	req.Less(strings.Index(out, "adore"), strings.Index(out, "like"))
}
