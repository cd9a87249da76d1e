// Package petapi provides the HTTP gateway to the pet store backend.
//
// # Overview
//
// The backend is a black box exposing three endpoints:
//
//	GET    {backend}/pets        list every pet (JSON array)
//	POST   {backend}/pets        create a pet (multipart: name, type, price, description, image)
//	DELETE {backend}/pets/{id}   delete a pet (status only)
//
// Client implements Gateway over those endpoints. Every call is bounded by a
// timeout and carries an X-Request-ID header so a request can be matched to
// the backend's own logs.
//
// # Errors
//
// Any failure (transport error, timeout, non-2xx status, malformed JSON) is
// returned as *UnavailableError, which matches ErrUnavailable via errors.Is.
// When the backend sends an error body the text is kept in Message; Reason
// picks the best string for a notification.
//
// The gateway never retries. Fallback policy belongs to the caller (see the
// state package).
//
// # Usage
//
//	client, err := petapi.NewClient("http://localhost:8000", petapi.WithTimeout(5*time.Second))
//	if err != nil {
//		return err
//	}
//	list, err := client.List(ctx)
//	if errors.Is(err, petapi.ErrUnavailable) {
//		// degrade to offline mode
//	}
package petapi
