package detect

import (
	"strings"
	"time"

	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
	"github.com/saturnino-fabrica-de-software/vigia/internal/provider"
)

// allowedObjectKeywords filtra as classes que interessam para a análise de
// integridade; todo o resto que o backend enxergar é ruído.
var allowedObjectKeywords = []string{
	"cell phone",
	"phone",
	"book",
	"laptop",
	"tablet",
	"mouse",
	"keyboard",
	"remote",
}

func allowedObject(name string) bool {
	lower := strings.ToLower(name)
	for _, keyword := range allowedObjectKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// objectEventType maps a detected class name to its event type. Phone-like
// and book-like classes get their dedicated types; everything else on the
// allow-list counts as a generic electronic device.
func objectEventType(name string) domain.EventType {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "phone"):
		return domain.EventPhoneDetected
	case strings.Contains(lower, "book"):
		return domain.EventBookDetected
	default:
		return domain.EventDeviceDetected
	}
}

// objectEvents converts the raw detections of one tick into candidate
// events, one per allow-listed object, keeping the backend's confidence and
// bounding box.
func objectEvents(objects []provider.DetectedObject, now time.Time) []domain.DetectionEvent {
	var events []domain.DetectionEvent
	for _, object := range objects {
		if !allowedObject(object.Name) {
			continue
		}

		metadata := &domain.EventMetadata{
			ObjectType: strings.ToLower(object.Name),
			BoundingBox: &domain.BoundingBox{
				X:      object.BoundingBox.X,
				Y:      object.BoundingBox.Y,
				Width:  object.BoundingBox.Width,
				Height: object.BoundingBox.Height,
			},
		}

		events = append(events, domain.DetectionEvent{
			EventType:  objectEventType(object.Name),
			Timestamp:  now,
			Confidence: object.Confidence,
			Metadata:   metadata,
		})
	}
	return events
}
