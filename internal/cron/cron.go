package cron

import (
	"context"
	"fmt"
	"log"
	"time"

	"agencydesk/internal/domain"
	"agencydesk/internal/modules/booking"
	"agencydesk/internal/modules/notification"
	"agencydesk/internal/pkg/mail"
	"agencydesk/internal/repository"

	"github.com/robfig/cron/v3"
)

// Sweeper owns the background jobs: completing elapsed confirmed bookings
// and sending one-hour reminders.
type Sweeper struct {
	bookings *booking.Service
	repo     *repository.BookingRepository
	mailer   *mail.Sender
	notifs   *notification.Service
}

func NewSweeper(
	bookings *booking.Service,
	repo *repository.BookingRepository,
	mailer *mail.Sender,
	notifs *notification.Service,
) *Sweeper {
	return &Sweeper{bookings: bookings, repo: repo, mailer: mailer, notifs: notifs}
}

// Start schedules both sweeps every minute and starts the scheduler.
func (s *Sweeper) Start() (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc("* * * * *", s.completeElapsed); err != nil {
		return nil, err
	}
	if _, err := c.AddFunc("* * * * *", s.sendReminders); err != nil {
		return nil, err
	}
	c.Start()
	log.Println("booking sweeps scheduled")
	return c, nil
}

func (s *Sweeper) completeElapsed() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	done, err := s.bookings.CompleteElapsed(ctx, time.Now())
	if err != nil {
		log.Printf("completion sweep: %v", err)
		return
	}
	if done > 0 {
		log.Printf("completion sweep: %d bookings completed", done)
	}
}

// sendReminders mails clients about confirmed bookings starting in roughly
// one hour. A booking is reminded at most once.
func (s *Sweeper) sendReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now()
	upcoming, err := s.repo.ListConfirmedStartingBetween(ctx, now.Add(55*time.Minute), now.Add(65*time.Minute))
	if err != nil {
		log.Printf("reminder sweep: %v", err)
		return
	}

	for i := range upcoming {
		b := &upcoming[i]
		if b.Client == nil || b.Client.Email == "" {
			continue
		}
		if err := s.mailer.Send(b.Client.Email, reminderSubject(b), reminderBody(b)); err != nil {
			log.Printf("reminder sweep: booking %d: %v", b.ID, err)
			continue
		}
		if s.notifs != nil {
			_ = s.notifs.Create(ctx, b.HostID, domain.NotifBookingReminder,
				"Reminder sent",
				fmt.Sprintf("Reminder sent to %s for %q", b.Client.Email, b.Title), nil)
		}
		if err := s.repo.MarkReminderSent(ctx, b.ID, now); err != nil {
			log.Printf("reminder sweep: booking %d: %v", b.ID, err)
		}
	}
}

func reminderSubject(b *domain.Booking) string {
	return fmt.Sprintf("Reminder: %s at %s", b.Title, b.StartTime.Format("15:04"))
}

func reminderBody(b *domain.Booking) string {
	host := ""
	if b.Host != nil {
		host = b.Host.Name
	}
	location := b.Location
	if b.MeetingURL != "" {
		location = b.MeetingURL
	}
	return fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>This is a reminder for your upcoming appointment.</p>
		<ul>
			<li><strong>Title:</strong> %s</li>
			<li><strong>With:</strong> %s</li>
			<li><strong>Starts:</strong> %s</li>
			<li><strong>Where:</strong> %s</li>
		</ul>
		<p>If you need to reschedule, please get in touch as soon as possible.</p>
	`, clientName(b), b.Title, host, b.StartTime.Format("2006-01-02 15:04"), location)
}

func clientName(b *domain.Booking) string {
	if b.Client != nil {
		return b.Client.Name
	}
	return "there"
}
