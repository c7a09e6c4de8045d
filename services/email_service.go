package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"gopkg.in/gomail.v2"

	"preparedhub-api/config"
)

const verificationCodeTTL = 10 * time.Minute

// EmailService sends transactional mail and tracks verification codes.
// Codes live in redis with a TTL; without a redis client they fall back
// to an in-process map so local development works without infra.
type EmailService struct {
	config *config.Config
	dialer *gomail.Dialer
	redis  *redis.Client

	// Fallback storage for verification codes
	codes map[string]verificationCode
	mutex sync.RWMutex
}

type verificationCode struct {
	Code      string
	ExpiresAt time.Time
}

func NewEmailService(cfg *config.Config, redisClient *redis.Client) *EmailService {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)

	return &EmailService{
		config: cfg,
		dialer: dialer,
		redis:  redisClient,
		codes:  make(map[string]verificationCode),
	}
}

// Generate a random 6-digit verification code
func (es *EmailService) generateVerificationCode() string {
	const digits = "0123456789"
	code := make([]byte, 6)

	for i := range code {
		num, _ := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		code[i] = digits[num.Int64()]
	}

	return string(code)
}

func codeKey(email string) string {
	return "verify:" + email
}

func (es *EmailService) storeCode(email, code string) error {
	if es.redis != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return es.redis.Set(ctx, codeKey(email), code, verificationCodeTTL).Err()
	}

	es.mutex.Lock()
	defer es.mutex.Unlock()
	es.codes[email] = verificationCode{
		Code:      code,
		ExpiresAt: time.Now().Add(verificationCodeTTL),
	}
	return nil
}

func (es *EmailService) loadCode(email string) (string, bool) {
	if es.redis != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		code, err := es.redis.Get(ctx, codeKey(email)).Result()
		if err != nil {
			return "", false
		}
		return code, true
	}

	es.mutex.RLock()
	defer es.mutex.RUnlock()
	stored, ok := es.codes[email]
	if !ok || time.Now().After(stored.ExpiresAt) {
		return "", false
	}
	return stored.Code, true
}

func (es *EmailService) deleteCode(email string) {
	if es.redis != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		es.redis.Del(ctx, codeKey(email))
		return
	}

	es.mutex.Lock()
	defer es.mutex.Unlock()
	delete(es.codes, email)
}

// SendVerificationEmail generates a code, stores it and mails it to the
// user. Returns the code so debug endpoints can expose it in dev mode.
func (es *EmailService) SendVerificationEmail(email, username string) (string, error) {
	code := es.generateVerificationCode()
	if err := es.storeCode(email, code); err != nil {
		return "", fmt.Errorf("failed to store verification code: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", es.config.FromName, es.config.FromEmail))
	m.SetHeader("To", email)
	m.SetHeader("Subject", "PreparedHub - Email Verification")

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h1 style="color: #d9534f;">PreparedHub</h1>
        <h2>Hello %s!</h2>
        <p>Welcome to PreparedHub. Enter the code below to verify your email address:</p>
        <div style="background: #e9ecef; padding: 20px; text-align: center; border-radius: 8px;">
            <span style="font-size: 32px; font-weight: bold; letter-spacing: 8px;">%s</span>
        </div>
        <p>This code expires in 10 minutes.</p>
        <p style="color: #666; font-size: 14px;">If you did not sign up, you can ignore this email.</p>
    </div>
</body>
</html>`, username, code)

	m.SetBody("text/html", htmlBody)

	if err := es.dialer.DialAndSend(m); err != nil {
		return "", fmt.Errorf("failed to send verification email: %w", err)
	}

	return code, nil
}

// VerifyCode checks a submitted code and consumes it on success
func (es *EmailService) VerifyCode(email, inputCode string) bool {
	code, ok := es.loadCode(email)
	if !ok || code != inputCode {
		return false
	}

	es.deleteCode(email)
	return true
}

// SendWelcomeEmail is sent once after a successful verification
func (es *EmailService) SendWelcomeEmail(email, username string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", es.config.FromName, es.config.FromEmail))
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Welcome to PreparedHub")

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h1 style="color: #d9534f;">PreparedHub</h1>
        <h2>Welcome aboard, %s!</h2>
        <p>Your email is verified. Set your location in your profile to receive
        alerts for your area, and join a local community to stay connected when
        it matters.</p>
    </div>
</body>
</html>`, username)

	m.SetBody("text/html", htmlBody)

	return es.dialer.DialAndSend(m)
}
