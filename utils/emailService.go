package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"learnify/config"
)

// SendEmail sends an HTML email over SMTP. A missing sender or password
// turns it into a no-op so local setups work without mail credentials.
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	if from == "" || password == "" {
		log.Printf("email disabled, skipping %q to %v", subject, to)
		return nil
	}

	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Learnify <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	if err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg)); err != nil {
		log.Printf("error sending email: %v", err)
		return err
	}
	return nil
}

func emailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #1D4ED8; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #111827; line-height: 1.6; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #1D4ED8; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>Learnify</h1></div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">Learnify &middot; Learn anything, anywhere</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}

// SendWelcomeEmail greets a newly registered user
func SendWelcomeEmail(name, email string) {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Welcome to Learnify! Your account is ready.</p>
		<p>Browse the course catalog, enroll in a course and start learning today.</p>
		<a class="btn" href="%s">Open Learnify</a>`, name, config.AppConfig.ClientURL)

	if err := SendEmail([]string{email}, "Welcome to Learnify!", emailTemplate("Welcome aboard", body)); err != nil {
		log.Printf("failed to send welcome email to %s: %v", email, err)
	}
}

// SendCourseCompletedEmail congratulates a learner who finished a course
func SendCourseCompletedEmail(name, email, courseTitle string) {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Congratulations! You completed <strong>%s</strong>.</p>
		<p>Keep the momentum going and pick your next course.</p>
		<a class="btn" href="%s">Find your next course</a>`, name, courseTitle, config.AppConfig.ClientURL)

	if err := SendEmail([]string{email}, "Course completed, congratulations!", emailTemplate("Course completed", body)); err != nil {
		log.Printf("failed to send completion email to %s: %v", email, err)
	}
}
