package serverController

import (
	"bufio"
	"encoding/json"
	"fmt"
	"hub/middleware"
	"hub/utils"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

// NewConsoleTail returns the lines of cur that were not already present at
// the end of prev. The panel returns a rolling window, so consecutive polls
// overlap; the longest suffix-of-prev / prefix-of-cur overlap marks the
// boundary.
func NewConsoleTail(prev, cur []string) []string {
	if len(prev) == 0 {
		return cur
	}
	max := len(prev)
	if len(cur) < max {
		max = len(cur)
	}
	for overlap := max; overlap > 0; overlap-- {
		match := true
		for i := 0; i < overlap; i++ {
			if prev[len(prev)-overlap+i] != cur[i] {
				match = false
				break
			}
		}
		if match {
			return cur[overlap:]
		}
	}
	return cur
}

// StreamConsole serves a server-sent-event stream of console output and
// periodic stats. New subscribers get a replay of the bounded buffer first;
// thereafter the panel is polled and only fresh lines are emitted. The client
// reconnects with its own backoff on token expiry.
func StreamConsole(c *fiber.Ctx) error {
	server, err := loadServer(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Server not found!", nil)
	}

	panelID := server.PanelID
	buffer := utils.ConsoleBufferFor(panelID)

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		client := utils.NewPanelClient()

		writeEvent := func(event, data string) bool {
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
				return false
			}
			return w.Flush() == nil
		}

		// Replay the buffered tail so the console is not blank on connect.
		for _, line := range buffer.Lines() {
			if !writeEvent("console", line) {
				return
			}
		}

		prev, err := client.ConsoleLogs(panelID)
		if err == nil {
			for _, line := range NewConsoleTail(buffer.Lines(), prev) {
				buffer.Append(line)
				if !writeEvent("console", line) {
					return
				}
			}
		}

		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()

		statsEvery := 5 // every 5th tick, ~10s
		tick := 0
		for range ticker.C {
			tick++

			cur, err := client.ConsoleLogs(panelID)
			if err == nil {
				for _, line := range NewConsoleTail(prev, cur) {
					buffer.Append(line)
					if !writeEvent("console", line) {
						return
					}
				}
				prev = cur
			}

			if tick%statsEvery == 0 {
				if res, err := client.Resources(panelID); err == nil {
					payload, _ := json.Marshal(res)
					if !writeEvent("stats", string(payload)) {
						return
					}
				}
			}

			// Heartbeat keeps intermediaries from closing an idle stream.
			if !writeEvent("ping", fmt.Sprintf("%d", time.Now().Unix())) {
				return
			}
		}
	}))

	return nil
}
