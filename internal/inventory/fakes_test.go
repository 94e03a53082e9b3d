package inventory

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/erazemk/inventory/internal/model"
)

type fakeRepo struct {
	mu      sync.Mutex
	items   []model.Item
	nextID  int64
	updates int
	inserts int
	deletes int
	failErr error
}

func (r *fakeRepo) Insert(ctx context.Context, item model.Item) (model.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failErr != nil {
		return model.Item{}, r.failErr
	}
	r.inserts++
	r.nextID++
	item.ID = r.nextID
	r.items = append(r.items, item)
	return item, nil
}

func (r *fakeRepo) Update(ctx context.Context, item model.Item) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failErr != nil {
		return false, r.failErr
	}
	r.updates++
	for i := range r.items {
		if r.items[i].ID == item.ID {
			r.items[i] = item
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) Delete(ctx context.Context, item model.Item) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failErr != nil {
		return false, r.failErr
	}
	r.deletes++
	for i := range r.items {
		if r.items[i].ID == item.ID {
			r.items = slices.Delete(r.items, i, i+1)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) List(ctx context.Context) ([]model.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failErr != nil {
		return nil, r.failErr
	}
	return slices.Clone(r.items), nil
}

type listView struct {
	shown    [][]model.Item
	empty    int
	messages []string
}

func (v *listView) ShowItems(items []model.Item) { v.shown = append(v.shown, items) }
func (v *listView) ShowEmpty()                   { v.empty++ }
func (v *listView) ShowMessage(msg string)       { v.messages = append(v.messages, msg) }

func (v *listView) last() []model.Item {
	if len(v.shown) == 0 {
		return nil
	}
	return v.shown[len(v.shown)-1]
}

type detailView struct {
	item       model.Item
	image      []byte
	shows      int
	errVisible bool
	cleared    int
	confirm    bool
	prompts    []string
	navigated  bool
}

func (v *detailView) ShowItem(item model.Item, image []byte) {
	v.item = item
	v.image = image
	v.shows++
}
func (v *detailView) ShowQuantityError(visible bool) { v.errVisible = visible }
func (v *detailView) ClearInput()                    { v.cleared++ }
func (v *detailView) Confirm(prompt string) bool {
	v.prompts = append(v.prompts, prompt)
	return v.confirm
}
func (v *detailView) NavigateToList() { v.navigated = true }

type fakeMailer struct {
	to, subject string
	err         error
}

func (m *fakeMailer) Compose(to, subject string) error {
	m.to, m.subject = to, subject
	return m.err
}

type fakeImages struct {
	data map[string][]byte
}

func (f fakeImages) Load(ref string) ([]byte, error) {
	if d, ok := f.data[ref]; ok {
		return d, nil
	}
	return nil, errors.New("no such image")
}
