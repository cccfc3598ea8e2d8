package main

import (
	"bytes"
	"log/slog"
	"net/http"
	"sync"
	"time"

	json "github.com/bytedance/sonic"

	"sheetEngine/contracts"
)

const WebhookWorkersCount = 5

type SheetWebhooks map[string]string

type WebhookSendCommand struct {
	Webhook string
	Cell    *contracts.Cell
}

// ChangeDispatcher delivers cell-change notifications to subscribed webhook
// URLs. Deliveries are queued and sent by a fixed pool of workers so the edit
// path never waits on the network.
type ChangeDispatcher struct {
	mu       sync.RWMutex
	queue    chan WebhookSendCommand
	webhooks map[string]SheetWebhooks
}

func NewChangeDispatcher() *ChangeDispatcher {
	return &ChangeDispatcher{
		queue:    make(chan WebhookSendCommand, 20),
		webhooks: map[string]SheetWebhooks{},
	}
}

func (d *ChangeDispatcher) SetWebhookUrl(sheetId string, canonicalCellId string, webhookUrl string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.webhooks[sheetId]; !ok {
		if webhookUrl == "" {
			return
		}
		d.webhooks[sheetId] = SheetWebhooks{}
	}

	if webhookUrl == "" {
		delete(d.webhooks[sheetId], canonicalCellId)
	} else {
		d.webhooks[sheetId][canonicalCellId] = webhookUrl
	}
}

func (d *ChangeDispatcher) GetWebhookUrl(sheetId string, canonicalCellId string) string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.webhooks[sheetId][canonicalCellId]
}

func (d *ChangeDispatcher) Notify(sheetId string, cells []*contracts.Cell) {
	d.mu.RLock()
	subscribed := len(d.webhooks[sheetId]) > 0
	d.mu.RUnlock()

	if !subscribed {
		return
	}

	go d.addToQueue(sheetId, cells)
}

func (d *ChangeDispatcher) addToQueue(sheetId string, cells []*contracts.Cell) {
	for _, cell := range cells {
		if webhook := d.GetWebhookUrl(sheetId, cell.CanonicalKey); webhook != "" {
			d.queue <- WebhookSendCommand{
				Webhook: webhook,
				Cell:    cell,
			}
		}
	}
}

func (d *ChangeDispatcher) Start() {
	for i := 0; i < WebhookWorkersCount; i++ {
		go d.runWebhookSenderWorker()
	}
}

func (d *ChangeDispatcher) Close() {
	close(d.queue)
}

func (d *ChangeDispatcher) runWebhookSenderWorker() {
	client := &http.Client{
		Timeout: time.Second * 5,
	}

	for command := range d.queue {
		payload, _ := json.Marshal(command.Cell)

		response, err := client.Post(command.Webhook, "application/json", bytes.NewBuffer(payload))

		if err != nil {
			slog.Error("webhook send failed", "url", command.Webhook, "error", err)
		} else if response.StatusCode >= 300 {
			slog.Warn("unexpected webhook response", "url", command.Webhook, "status", response.Status)
		}
	}
}
