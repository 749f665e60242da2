package feedback

import (
	"errors"
	"strings"

	"github.com/gotimer-app/gotimer-backend/internal/pkg/identity"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/pubsub"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/reject"
	"github.com/spf13/viper"
)

const defaultRecipient = "feedback@gotimer.app"

// Publisher hands a mail job to the outbound relay. Delivery itself is an
// external collaborator consuming the topic.
type Publisher func(message pubsub.Publishable) error

type feedbackService struct {
	publish Publisher
}

type FeedbackMessage struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	UserId    string `json:"userId"`
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
}

func (FeedbackMessage) GetEventTopicName() string {
	topic := viper.GetString("FEEDBACK_TOPIC")
	if topic == "" {
		topic = "feedback-email"
	}
	return topic
}

func (fs *feedbackService) sendFeedback(subject string, message string, sender identity.Identity) *reject.ProblemWithTrace {
	subject = strings.TrimSpace(subject)
	if subject == "" || len(subject) > 200 {
		return validation("subject must be 1-200 characters")
	}
	message = strings.TrimSpace(message)
	if message == "" || len(message) > 5000 {
		return validation("message must be 1-5000 characters")
	}

	recipient := viper.GetString("FEEDBACK_RECIPIENT")
	if recipient == "" {
		recipient = defaultRecipient
	}

	job := FeedbackMessage{
		Recipient: recipient,
		Subject:   "[GoTimer Feedback] " + subject,
		Body:      message,
		UserId:    sender.Id,
		UserName:  sender.Name,
		UserEmail: sender.Email,
	}

	if err := fs.publish(job); err != nil {
		return &reject.ProblemWithTrace{
			Problem: reject.UpstreamProblem(err),
			Cause:   err,
		}
	}

	return nil
}

func validation(detail string) *reject.ProblemWithTrace {
	return &reject.ProblemWithTrace{
		Problem: reject.ValidationProblem(detail),
		Cause:   errors.New(detail),
	}
}
