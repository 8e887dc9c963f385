package archiver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"slack-archiver/models"
)

// fakeAPI is an in-memory API implementation for pipeline tests.
type fakeAPI struct {
	channels []models.Channel
	listErr  error

	joinErrs  map[string]error // per-channel join failure
	joinCalls map[string]int

	pages     map[string][][]models.RawMessage // per-channel pages, newest-first
	pageErrAt map[string]int                   // per-channel page index that fails
	served    map[string]int

	users   map[string]string
	userErr error

	workspace    string
	workspaceErr error

	dmID  string
	dmErr error

	files   map[string]string // content served by URL
	badURLs map[string]bool

	uploads    []string         // base names in upload order
	uploadErrs map[string]error // per-file upload failure
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		joinErrs:   make(map[string]error),
		joinCalls:  make(map[string]int),
		pages:      make(map[string][][]models.RawMessage),
		pageErrAt:  make(map[string]int),
		served:     make(map[string]int),
		users:      make(map[string]string),
		workspace:  "acme",
		dmID:       "D100",
		files:      make(map[string]string),
		badURLs:    make(map[string]bool),
		uploadErrs: make(map[string]error),
	}
}

func (f *fakeAPI) ListChannels(ctx context.Context) ([]models.Channel, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Channel, len(f.channels))
	copy(out, f.channels)
	return out, nil
}

func (f *fakeAPI) JoinChannel(ctx context.Context, channelID string) error {
	f.joinCalls[channelID]++
	return f.joinErrs[channelID]
}

func (f *fakeAPI) HistoryPage(ctx context.Context, req HistoryRequest) (HistoryPage, error) {
	pages := f.pages[req.ChannelID]
	idx := 0
	if req.Cursor != "" {
		idx, _ = strconv.Atoi(req.Cursor)
	}
	if errAt, ok := f.pageErrAt[req.ChannelID]; ok && idx == errAt {
		return HistoryPage{}, errors.New("network_error")
	}
	f.served[req.ChannelID]++
	if idx >= len(pages) {
		return HistoryPage{}, nil
	}
	page := HistoryPage{Messages: pages[idx]}
	if idx+1 < len(pages) {
		page.NextCursor = strconv.Itoa(idx + 1)
	}
	return page, nil
}

func (f *fakeAPI) LookupUser(ctx context.Context, userID string) (string, error) {
	if f.userErr != nil {
		return "", f.userErr
	}
	name, ok := f.users[userID]
	if !ok {
		return "", errors.New("user_not_found")
	}
	return name, nil
}

func (f *fakeAPI) WorkspaceName(ctx context.Context) (string, error) {
	return f.workspace, f.workspaceErr
}

func (f *fakeAPI) OpenDM(ctx context.Context, userID string) (string, error) {
	if f.dmErr != nil {
		return "", f.dmErr
	}
	return f.dmID, nil
}

func (f *fakeAPI) DownloadFile(ctx context.Context, url string, w io.Writer) error {
	if f.badURLs[url] {
		return errors.New("file_not_found")
	}
	content, ok := f.files[url]
	if !ok {
		return fmt.Errorf("no fake content for %s", url)
	}
	_, err := io.Copy(w, strings.NewReader(content))
	return err
}

func (f *fakeAPI) UploadFile(ctx context.Context, channelID, path, title, comment string) error {
	base := path[strings.LastIndexByte(path, '/')+1:]
	if err := f.uploadErrs[base]; err != nil {
		return err
	}
	f.uploads = append(f.uploads, base)
	return nil
}

// ts builds a UTC timestamp for test messages.
func ts(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}
