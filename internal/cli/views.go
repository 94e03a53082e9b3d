package cli

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/erazemk/inventory/internal/model"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "243"})
	labelStyle  = lipgloss.NewStyle().Bold(true).Width(10)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"})
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})
)

// numeric columns of the item table.
var numericColumns = map[int]bool{0: true, 2: true, 3: true}

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64)
}

func renderTable(items []model.Item) string {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			strconv.FormatInt(it.ID, 10),
			it.Description,
			formatPrice(it.Price),
			strconv.Itoa(it.Quantity),
			it.SupplierEmail,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case numericColumns[col]:
				return numberStyle
			default:
				return cellStyle
			}
		}).
		Headers("ID", "DESCRIPTION", "PRICE", "QTY", "SUPPLIER").
		Rows(rows...)

	return t.Render()
}

// listView prints the item list as a table.
type listView struct {
	out io.Writer
	err io.Writer
}

func (v *listView) ShowItems(items []model.Item) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(v.out, renderTable(items))
}

func (v *listView) ShowEmpty() {
	fmt.Fprintln(v.out, mutedStyle.Render("No items in the inventory."))
}

func (v *listView) ShowMessage(msg string) {
	fmt.Fprintln(v.err, errorStyle.Render(msg))
}

// detailView prints one item and asks for confirmations on in.
type detailView struct {
	out io.Writer
	err io.Writer
	in  *bufio.Reader
	yes bool
}

func newDetailView(out, errOut io.Writer, in io.Reader, yes bool) *detailView {
	return &detailView{out: out, err: errOut, in: bufio.NewReader(in), yes: yes}
}

func (v *detailView) ShowItem(item model.Item, img []byte) {
	lines := []string{
		labelStyle.Render("Item") + item.Description,
		labelStyle.Render("ID") + strconv.FormatInt(item.ID, 10),
		labelStyle.Render("Price") + formatPrice(item.Price),
		labelStyle.Render("Quantity") + strconv.Itoa(item.Quantity),
		labelStyle.Render("Supplier") + item.SupplierEmail,
	}
	if item.HasImage() {
		lines = append(lines, labelStyle.Render("Image")+describeImage(item.Image, img))
	}
	fmt.Fprintln(v.out, strings.Join(lines, "\n"))
}

func describeImage(ref string, img []byte) string {
	if img == nil {
		return ref + mutedStyle.Render(" (unavailable)")
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(img))
	if err != nil {
		return ref
	}
	return ref + mutedStyle.Render(fmt.Sprintf(" (%dx%d)", cfg.Width, cfg.Height))
}

func (v *detailView) ShowQuantityError(visible bool) {
	if visible {
		fmt.Fprintln(v.err, errorStyle.Render(model.ErrInsufficientStock.Message))
	}
}

// ClearInput is a no-op: flags are not kept between runs.
func (v *detailView) ClearInput() {}

func (v *detailView) Confirm(prompt string) bool {
	if v.yes {
		return true
	}
	fmt.Fprintf(v.out, "%s [y/N] ", prompt)
	answer, _ := v.in.ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

func (v *detailView) NavigateToList() {
	fmt.Fprintln(v.out, "Item deleted.")
}
