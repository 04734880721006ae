package ingestor

import (
	"fmt"

	"obedio-core/internal/model"
)

type Action string

const (
	ActionCall        Action = "call"
	ActionVoice       Action = "voice"
	ActionEmergency   Action = "emergency"
	ActionDND         Action = "dnd_toggle"
	ActionLights      Action = "lights"
	ActionPrepareFood Action = "prepare_food"
	ActionBringDrinks Action = "bring_drinks"
)

// Classification is what a press means. Only request actions reach the
// lifecycle manager.
type Classification struct {
	Action      Action
	RequestType model.RequestType
	Priority    model.Priority
	Voice       bool
	Label       string
}

func (c Classification) CreatesRequest() bool {
	return c.Action != ActionDND && c.Action != ActionLights
}

func (c Classification) Emergency() bool {
	return c.Priority == model.PriorityEmergency
}

// DedupKey is "{locationId}:{type}:{voice|tap}". Service buttons and actions
// that do not create a request use the action name as the type, so each
// button function dedups on its own.
func (c Classification) DedupKey(locationID string) string {
	kind := string(c.RequestType)
	if !c.CreatesRequest() || c.RequestType == model.RequestService {
		kind = string(c.Action)
	}
	mode := "tap"
	if c.Voice {
		mode = "voice"
	}
	return locationID + ":" + kind + ":" + mode
}

func Classify(button model.Button, press model.PressType) (Classification, error) {
	switch press {
	case model.PressSingle, model.PressDouble, model.PressLong:
	case model.PressShake:
		return Classification{
			Action:      ActionEmergency,
			RequestType: model.RequestEmergency,
			Priority:    model.PriorityEmergency,
			Label:       "Emergency",
		}, nil
	default:
		return Classification{}, fmt.Errorf("%w: unknown press type %q", model.ErrInvalidEvent, press)
	}

	switch button {
	case model.ButtonMain:
		switch press {
		case model.PressLong:
			return Classification{
				Action:      ActionVoice,
				RequestType: model.RequestCall,
				Priority:    model.PriorityNormal,
				Voice:       true,
				Label:       "Voice message",
			}, nil
		case model.PressDouble:
			return Classification{
				Action:      ActionCall,
				RequestType: model.RequestCall,
				Priority:    model.PriorityUrgent,
				Label:       "Urgent call",
			}, nil
		}
		return Classification{
			Action:      ActionCall,
			RequestType: model.RequestCall,
			Priority:    model.PriorityNormal,
			Label:       "Call",
		}, nil
	case model.ButtonAux1:
		return Classification{Action: ActionDND, Label: "Do not disturb"}, nil
	case model.ButtonAux2:
		return Classification{Action: ActionLights, Label: "Lights"}, nil
	case model.ButtonAux3:
		return Classification{
			Action:      ActionPrepareFood,
			RequestType: model.RequestService,
			Priority:    model.PriorityNormal,
			Label:       "Prepare food",
		}, nil
	case model.ButtonAux4:
		return Classification{
			Action:      ActionBringDrinks,
			RequestType: model.RequestService,
			Priority:    model.PriorityNormal,
			Label:       "Bring drinks",
		}, nil
	}
	return Classification{}, fmt.Errorf("%w: unknown button %q", model.ErrInvalidEvent, button)
}

// Validate checks the fields every press must carry.
func Validate(e model.DeviceEvent) error {
	missing := ""
	switch {
	case e.DeviceID == "":
		missing = "deviceId"
	case e.LocationID == "":
		missing = "locationId"
	case e.PressType == "":
		missing = "pressType"
	case e.Button == "":
		missing = "button"
	}
	if missing != "" {
		return fmt.Errorf("%w: missing %s", model.ErrInvalidEvent, missing)
	}
	return nil
}
