// Package nameless provides a Go client for the NamelessMC website API (v2).
//
// A NamelessMC website exposes its API under a secret key that is part of every
// URL. The client builds those URLs, encodes parameters, performs one HTTP round
// trip per call and decodes the {"error": ...} envelope the website wraps around
// every response.
//
// # Example Usage
//
//	client, err := nameless.New("https://example.com", "your-api-key")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	user, err := client.ResolveUser(ctx, nameless.Username("Notch"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(user.DisplayName, user.Groups)
//
// # Errors
//
// Every failed call returns exactly one error from package apierror: a
// TransportError when no usable response arrived, a MalformedResponseError when the
// body is not an envelope, or an ApplicationError carrying the website's error code
// and its ErrorKind. Canceled calls match apierror.ErrCanceled. Calls are never
// retried.
//
//	var appErr *apierror.ApplicationError
//	if errors.As(err, &appErr) && appErr.Kind == apierror.KindUserNotFound {
//	    // ask the player to register first
//	}
//
// # Raw Actions
//
// Client.Call performs any Action with arbitrary parameters and returns the
// payload, for fields the typed methods do not expose:
//
//	payload, err := client.Call(ctx, nameless.ActionUserInfo, nameless.String("username", "Notch"))
//	obj, err := payload.Object()
//	bio, err := obj.String("bio")
//
// # Observability
//
// Config.Logger and Config.Metrics receive structured logs and metrics for every
// HTTP request. The API key never appears in either; URLs are redacted and metric
// paths are normalised. observability.NewZerologLogger adapts a zerolog logger.
package nameless
