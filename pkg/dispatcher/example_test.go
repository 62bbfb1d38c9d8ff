package dispatcher_test

import (
	"context"
	"fmt"

	"github.com/heritagestay/notify/pkg/deliverylog"
	"github.com/heritagestay/notify/pkg/dispatcher"
	"github.com/heritagestay/notify/pkg/template"
)

func Example() {
	storage := template.NewMemoryStorage()
	storage.Put(template.Template{
		Key:           "verification_approved",
		Name:          "Verification Approved",
		EmailSubject:  "Welcome {{userName}}",
		EmailBodyHTML: "<p>Your {{entityType}} listing is live.</p>",
		IsActive:      true,
	})

	svc := dispatcher.New(
		template.NewResolver(storage),
		deliverylog.NewMemoryStore(),
		dispatcher.WithEmailClient(&fakeEmailClient{}),
	)

	result := svc.SendEmailNotification(context.Background(), "1",
		"verification_approved", "owner@example.com",
		map[string]string{"userName": "Asha", "entityType": "Hotel"})

	fmt.Println(result.Success, result.Provider)
	// Output: true postmark
}
