// Package report prints the results of a classifier to a terminal.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/sharnoff/emojify"
	"github.com/sharnoff/emojify/glove"
	"github.com/sharnoff/emojify/models"
)

const (
	markCorrect   string = "✓"
	markIncorrect string = "✗"
)

// Reporter writes tables and summaries to an output. Marks and accuracies are coloured only if
// Colours is true.
type Reporter struct {
	w       io.Writer
	Colours bool
}

func New(w io.Writer, colours bool) *Reporter {
	return &Reporter{w: w, Colours: colours}
}

func (r *Reporter) render(c color.Color, s string) string {
	if !r.Colours {
		return s
	}

	return c.Render(s)
}

func (r *Reporter) mark(correct bool) string {
	if correct {
		return r.render(color.FgGreen, markCorrect)
	}

	return r.render(color.FgRed, markIncorrect)
}

func (r *Reporter) table(header []string) *tablewriter.Table {
	t := tablewriter.NewWriter(r.w)
	t.SetHeader(header)
	t.SetAutoWrapText(false)
	t.SetAutoFormatHeaders(false)
	t.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	return t
}

// Predictions prints a row for every outcome: the sentence, the expected and predicted emoji, and
// whether they match.
func (r *Reporter) Predictions(outcomes []models.Outcome) {
	t := r.table([]string{"Sentence", "Expected", "Predicted", ""})
	for _, o := range outcomes {
		t.Append([]string{o.Sentence, o.Expected.Emoji(), o.Label.Emoji(), r.mark(o.Correct())})
	}

	t.Render()
}

// Mislabeled prints one line for every wrong prediction in the evaluation
func (r *Reporter) Mislabeled(ev models.Evaluation) {
	mis := ev.Mislabeled()
	if len(mis) == 0 {
		fmt.Fprintln(r.w, "No mislabeled sentences")
		return
	}

	fmt.Fprintf(r.w, "%d mislabeled:\n", len(mis))
	for _, o := range mis {
		fmt.Fprintf(r.w, "  %s expected %s, got %s (%.2f)\n", o.Sentence, o.Expected.Emoji(),
			o.Label.Emoji(), o.Probs[o.Label])
	}
}

// Confusion prints the confusion matrix of the evaluation, with a row for every expected label
// and a column for every predicted one.
func (r *Reporter) Confusion(ev models.Evaluation) {
	labels := emojify.Labels()
	header := append([]string{"Expected \\ Predicted"}, lo.Map(labels, func(l emojify.Label, _ int) string {
		return l.Emoji()
	})...)

	t := r.table(header)
	for _, exp := range labels {
		row := []string{exp.Emoji() + " " + exp.Name()}
		for _, pred := range labels {
			n := strconv.Itoa(ev.Confusion[exp][pred])
			if exp == pred && ev.Confusion[exp][pred] != 0 {
				n = r.render(color.OpBold, n)
			}

			row = append(row, n)
		}

		t.Append(row)
	}

	t.Render()
}

// Summary prints a single line with the accuracy and average cost of the evaluation
func (r *Reporter) Summary(name string, ev models.Evaluation) {
	correct := len(ev.Outcomes) - len(ev.Mislabeled())
	acc := fmt.Sprintf("%.2f%%", 100*ev.Accuracy)

	switch {
	case ev.Accuracy >= 0.8:
		acc = r.render(color.FgGreen, acc)
	case ev.Accuracy >= 0.5:
		acc = r.render(color.FgYellow, acc)
	default:
		acc = r.render(color.FgRed, acc)
	}

	fmt.Fprintf(r.w, "%s accuracy: %s (%d/%d), cost %.4f\n", name, acc, correct, len(ev.Outcomes), ev.Cost)
}

// Prediction prints a sentence followed by its predicted emoji
func (r *Reporter) Prediction(p models.Prediction) {
	fmt.Fprintf(r.w, "%s %s\n", p.Sentence, p.Label.Emoji())
}

// Evaluation prints everything known about the evaluation: the predictions, the mislabeled
// sentences, the confusion matrix, and a summary.
func (r *Reporter) Evaluation(name string, ev models.Evaluation) {
	r.Predictions(ev.Outcomes)
	fmt.Fprintln(r.w)
	r.Mislabeled(ev)
	fmt.Fprintln(r.w)
	r.Confusion(ev)
	r.Summary(name, ev)
}

// Neighbors prints the words closest to a word, most similar first
func (r *Reporter) Neighbors(word string, ns []glove.Neighbor) {
	t := r.table([]string{"#", "Nearest to " + word, "Similarity"})
	for i, n := range ns {
		t.Append([]string{strconv.Itoa(i + 1), n.Word, strconv.FormatFloat(n.Similarity, 'f', 4, 64)})
	}

	t.Render()
}
