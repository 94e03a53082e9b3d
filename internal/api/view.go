package api

import "github.com/erazemk/inventory/internal/model"

// listRecorder captures what the list controller renders during one request.
type listRecorder struct {
	items   []model.Item
	empty   bool
	message string
}

func (v *listRecorder) ShowItems(items []model.Item) {
	if items == nil {
		items = []model.Item{}
	}
	v.items = items
}
func (v *listRecorder) ShowEmpty()             { v.empty = true }
func (v *listRecorder) ShowMessage(msg string) { v.message = msg }

// detailRecorder captures what the detail controller renders during one request.
// Confirmation comes from the request itself.
type detailRecorder struct {
	item          model.Item
	image         []byte
	quantityError bool
	inputCleared  bool
	confirmed     bool
	prompt        string
	navigated     bool
}

func (v *detailRecorder) ShowItem(item model.Item, image []byte) {
	v.item = item
	v.image = image
}
func (v *detailRecorder) ShowQuantityError(visible bool) { v.quantityError = visible }
func (v *detailRecorder) ClearInput()                    { v.inputCleared = true }
func (v *detailRecorder) Confirm(prompt string) bool {
	v.prompt = prompt
	return v.confirmed
}
func (v *detailRecorder) NavigateToList() { v.navigated = true }
