package email

import (
	"context"
	"encoding/json"
	"fmt"
	"net/smtp"
	"time"

	"gymdesk/internal/logger"
	"gymdesk/internal/metrics"

	"github.com/redis/go-redis/v9"
)

const (
	queueKey       = "emails"
	failedQueueKey = "emails:failed"
	maxTries       = 3
)

type Job struct {
	To      string    `json:"to"`
	Name    string    `json:"name"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

type Service struct {
	redis    *redis.Client
	from     string
	fromName string
	smtpHost string
	smtpPort string
	smtpUser string
	smtpPass string
}

func New(fromEmail, fromName, smtpHost, smtpPort, smtpUser, smtpPass, redisAddr string) *Service {
	return NewWithClient(fromEmail, fromName, smtpHost, smtpPort, smtpUser, smtpPass,
		redis.NewClient(&redis.Options{Addr: redisAddr}))
}

// NewWithClient allows injecting a redis client (used by tests).
func NewWithClient(fromEmail, fromName, smtpHost, smtpPort, smtpUser, smtpPass string, client *redis.Client) *Service {
	return &Service{
		redis:    client,
		from:     fromEmail,
		fromName: fromName,
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		smtpUser: smtpUser,
		smtpPass: smtpPass,
	}
}

func (s *Service) Send(ctx context.Context, to, name, subject, body string) error {
	job := Job{
		To:      to,
		Name:    name,
		Subject: subject,
		Body:    body,
		Tries:   0,
		Created: time.Now(),
	}

	data, err := json.Marshal(job)
	if err != nil {
		logger.Errorf("Failed to marshal email job: %v", err)
		return err
	}

	if err := s.redis.LPush(ctx, queueKey, string(data)).Err(); err != nil {
		logger.Errorf("Failed to queue email to %s: %v", to, err)
		metrics.RecordEmail("queued", "error")
		return err
	}

	logger.Infof("Email queued: %s to %s", subject, to)
	metrics.RecordEmail("queued", "ok")
	return nil
}

func (s *Service) Start(ctx context.Context) {
	logger.Info("Email service started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Email service stopped")
			return
		default:
			s.processNext(ctx)
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if err != nil {
		return
	}

	var job Job
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Errorf("Bad email data: %v", err)
		return
	}

	job.Tries++
	logger.Infof("Sending email to %s (attempt %d)", job.To, job.Tries)
	if err := s.sendNow(job); err != nil {
		logger.Errorf("Failed to send email to %s: %v", job.To, err)
		metrics.RecordEmail("delivery", "error")

		if job.Tries < maxTries {
			time.Sleep(5 * time.Second)
			data, _ := json.Marshal(job)
			s.redis.LPush(context.Background(), queueKey, data)
			logger.Infof("Retrying email to %s (attempt %d)", job.To, job.Tries+1)
		} else {
			logger.Errorf("Email to %s failed after %d attempts", job.To, maxTries)
			s.saveFailed(job, err)
		}
		return
	}

	metrics.RecordEmail("delivery", "ok")
	logger.Infof("Email sent successfully to %s", job.To)
}

func (s *Service) sendNow(job Job) error {
	message := fmt.Sprintf("From: %s <%s>\r\n", s.fromName, s.from)
	message += fmt.Sprintf("To: %s\r\n", job.To)
	message += fmt.Sprintf("Subject: %s\r\n", job.Subject)
	message += "\r\n" + job.Body

	var auth smtp.Auth
	if s.smtpUser != "" && s.smtpPass != "" {
		auth = smtp.PlainAuth("", s.smtpUser, s.smtpPass, s.smtpHost)
	}

	addr := s.smtpHost + ":" + s.smtpPort
	return smtp.SendMail(addr, auth, s.from, []string{job.To}, []byte(message))
}

func (s *Service) saveFailed(job Job, err error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": err.Error(),
		"time":  time.Now(),
	}
	data, _ := json.Marshal(failed)
	s.redis.LPush(context.Background(), failedQueueKey, data)
	logger.Errorf("Email moved to failed queue: %s", job.To)
}

func (s *Service) QueueLength(ctx context.Context) int64 {
	length, _ := s.redis.LLen(ctx, queueKey).Result()
	return length
}

func (s *Service) Close() error {
	return s.redis.Close()
}

func (s *Service) SendBookingConfirmation(ctx context.Context, to, name, trainerName string, start, end time.Time) error {
	subject := "Session Booked - " + trainerName
	body := fmt.Sprintf(`Hi %s,

Your training session is booked!

Trainer: %s
Time: %s - %s

See you at the gym!

- Gymdesk`, name, trainerName, start.Format("Jan 2, 2006 at 3:04 PM"), end.Format("3:04 PM"))

	return s.Send(ctx, to, name, subject, body)
}

func (s *Service) SendJoinAccepted(ctx context.Context, to, name, gymName string, membershipEnd *time.Time) error {
	subject := "Welcome to " + gymName
	body := fmt.Sprintf("Hi %s,\n\nYour request to join %s has been accepted.", name, gymName)
	if membershipEnd != nil {
		body += fmt.Sprintf("\nYour membership runs until %s.", membershipEnd.Format("Jan 2, 2006"))
	}
	body += "\n\n- Gymdesk"

	return s.Send(ctx, to, name, subject, body)
}
