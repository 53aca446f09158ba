package telegram

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"snap-solver/api/internal/camera"
)

// acceptPhoto downloads the largest rendition of an incoming photo and
// feeds it to the open capture device. A photo sent outside the capture
// screen starts a scan implicitly.
func (r *Router) acceptPhoto(msg tgbotapi.Message) {
	cid := msg.Chat.ID
	ph := msg.Photo[len(msg.Photo)-1]
	file, err := r.Bot.GetFile(tgbotapi.FileConfig{FileID: ph.FileID})
	if err != nil {
		r.send(cid, "Could not fetch the photo: "+err.Error())
		return
	}
	url := fmt.Sprintf("https://api.telegram.org/file/bot%s/%s", r.Bot.Token, file.FilePath)
	raw, err := download(url)
	if err != nil {
		r.send(cid, "Could not download the photo: "+err.Error())
		return
	}

	frame, err := camera.Normalize(raw, camera.DefaultOptions)
	if err != nil {
		log.Printf("chat %d: normalize photo: %v, sending raw bytes", cid, err)
		frame = raw
	}

	if pushFrame(cid, frame) {
		return // the open capture screen picks it up
	}

	// No capture screen open: run the full capture flow inline.
	sess := sessionFor(cid)
	sess.mu.Lock()
	sess.router.BeginCapture()
	sess.mu.Unlock()
	r.startScan(cid, sess, frame)
}

func download(url string) ([]byte, error) {
	resp, err := httpClient().Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(b))
	}
	return io.ReadAll(resp.Body)
}

func httpClient() *http.Client {
	return &http.Client{Timeout: 60 * time.Second}
}
