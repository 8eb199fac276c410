package handlers

// HandlerBundle aggregates the HTTP handlers so route registration takes a
// single dependency.
type HandlerBundle struct {
	Booking      *BookingHandler
	Notification *NotificationHandler
	Payment      *PaymentHandler
	Realtime     *RealtimeHandler
	User         *UserHandler
	Provider     *ProviderHandler
	Admin        *AdminHandler
}
