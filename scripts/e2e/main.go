package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Steps:
// 1. Seed a location and an onboard guest over HTTP
// 2. Publish the same press twice over MQTT (retransmission)
// 3. Check exactly one pending request exists for the location
// 4. Acknowledge it from a crew watch and check it is accepted
// 5. Double press to toggle DND and check there are no consistency issues

const (
	baseURL = "http://localhost:8080"
	broker  = "tcp://localhost:1883"
)

func main() {
	put("/locations/e2e-cabin", map[string]any{"name": "E2E Cabin"})
	put("/guests/e2e-guest", map[string]any{
		"firstName":  "Test",
		"lastName":   "Guest",
		"locationId": "e2e-cabin",
		"type":       "owner",
		"status":     "onboard",
	})

	opts := mqtt.NewClientOptions().AddBroker(broker).SetClientID("obedio-e2e").SetCleanSession(true)
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		panic(token.Error())
	}
	defer client.Disconnect(250)

	seq := time.Now().Unix()
	press := map[string]any{
		"deviceId":       "e2e-button",
		"locationId":     "e2e-cabin",
		"pressType":      "single",
		"button":         "main",
		"timestamp":      time.Now().UTC().Format(time.RFC3339Nano),
		"sequenceNumber": seq,
	}
	publish(client, "obedio/button/e2e-button/press", press)
	publish(client, "obedio/button/e2e-button/press", press)
	time.Sleep(2 * time.Second)

	var queue struct {
		Requests []struct {
			ID         string `json:"id"`
			LocationID string `json:"locationId"`
			Status     string `json:"status"`
		} `json:"requests"`
	}
	get("/service-requests", &queue)
	var requestID string
	matches := 0
	for _, r := range queue.Requests {
		if r.LocationID == "e2e-cabin" && r.Status == "pending" {
			requestID = r.ID
			matches++
		}
	}
	check(matches == 1, fmt.Sprintf("expected 1 pending request, got %d", matches))

	publish(client, "obedio/watch/e2e-watch/acknowledge", map[string]any{"requestId": requestID, "crewId": "e2e-crew"})
	time.Sleep(time.Second)

	var request struct {
		Status       string  `json:"status"`
		AssignedToID *string `json:"assignedToId"`
	}
	get("/service-requests/"+requestID, &request)
	check(request.Status == "accepted", "expected request to be accepted, got "+request.Status)

	press["pressType"] = "double"
	press["sequenceNumber"] = seq + 1
	press["timestamp"] = time.Now().UTC().Format(time.RFC3339Nano)
	publish(client, "obedio/button/e2e-button/press", press)
	time.Sleep(time.Second)

	var location struct {
		DoNotDisturb bool `json:"doNotDisturb"`
	}
	get("/locations/e2e-cabin", &location)
	check(location.DoNotDisturb, "expected DND on after double press")

	var issues struct {
		Issues []any `json:"issues"`
	}
	get("/dnd/issues", &issues)
	check(len(issues.Issues) == 0, fmt.Sprintf("expected no DND issues, got %d", len(issues.Issues)))

	fmt.Println("E2E test completed")
}

func publish(client mqtt.Client, topic string, v any) {
	payload, _ := json.Marshal(v)
	if token := client.Publish(topic, 1, false, payload); token.Wait() && token.Error() != nil {
		panic(token.Error())
	}
	fmt.Printf("Published to %s\n", topic)
}

func put(path string, v any) {
	body, _ := json.Marshal(v)
	req, err := http.NewRequest(http.MethodPut, baseURL+path, bytes.NewReader(body))
	if err != nil {
		panic(err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		panic(fmt.Sprintf("PUT %s: HTTP %d: %s", path, resp.StatusCode, raw))
	}
}

func get(path string, v any) {
	resp, err := http.Get(baseURL + path)
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		panic(fmt.Sprintf("GET %s: HTTP %d: %s", path, resp.StatusCode, raw))
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		panic(err)
	}
}

func check(ok bool, msg string) {
	if !ok {
		fmt.Println("FAIL:", msg)
		os.Exit(1)
	}
}
