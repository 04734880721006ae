package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

type press struct {
	DeviceID        string    `json:"deviceId"`
	LocationID      string    `json:"locationId"`
	PressType       string    `json:"pressType"`
	Button          string    `json:"button"`
	Timestamp       time.Time `json:"timestamp"`
	SequenceNumber  int64     `json:"sequenceNumber"`
	Battery         int       `json:"battery"`
	RSSI            int       `json:"rssi"`
	FirmwareVersion string    `json:"firmwareVersion"`
}

// Publishes button presses for one device and prints whatever the server
// sends back on its command topic.
func main() {
	broker := flag.String("broker", "tcp://localhost:1883", "mqtt broker")
	device := flag.String("device", "btn-cabin-1", "device id")
	location := flag.String("location", "cabin-1", "location id")
	pressType := flag.String("press", "single", "single, double, long or shake")
	button := flag.String("button", "main", "main or aux1..aux4")
	count := flag.Int("count", 1, "number of presses")
	seq := flag.Int64("seq", time.Now().Unix(), "first sequence number")
	flag.Parse()

	opts := mqtt.NewClientOptions().
		AddBroker(*broker).
		SetClientID("obedio-simulator-" + *device).
		SetCleanSession(true).
		SetConnectTimeout(30 * time.Second)
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		panic(token.Error())
	}
	defer client.Disconnect(250)

	commandTopic := "obedio/device/" + *device + "/command"
	token := client.Subscribe(commandTopic, 1, func(_ mqtt.Client, m mqtt.Message) {
		fmt.Printf("<- %s %s\n", m.Topic(), string(m.Payload()))
	})
	if token.Wait() && token.Error() != nil {
		panic(token.Error())
	}

	status, _ := json.Marshal(map[string]any{"online": true, "battery": 87, "rssi": -61})
	client.Publish("obedio/button/"+*device+"/status", 1, false, status).Wait()

	for i := 0; i < *count; i++ {
		payload, _ := json.Marshal(press{
			DeviceID:        *device,
			LocationID:      *location,
			PressType:       *pressType,
			Button:          *button,
			Timestamp:       time.Now().UTC(),
			SequenceNumber:  *seq + int64(i),
			Battery:         87,
			RSSI:            -61,
			FirmwareVersion: "1.4.2",
		})
		topic := "obedio/button/" + *device + "/press"
		if token := client.Publish(topic, 1, false, payload); token.Wait() && token.Error() != nil {
			fmt.Printf("Publish failed: %v\n", token.Error())
			continue
		}
		fmt.Printf("-> %s seq=%d\n", topic, *seq+int64(i))
		time.Sleep(200 * time.Millisecond)
	}

	// Leave time for acks to arrive.
	time.Sleep(2 * time.Second)
}
