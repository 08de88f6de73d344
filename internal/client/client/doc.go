// Package client is the console's transport layer to the booky API.
//
// # Overview
//
//  1. Gateway: uniform request dispatch. Attaches "Authorization: Bearer
//     <credential>" when a TokenSource yields one, tags each call with an
//     X-Request-ID, decodes JSON payloads and maps failures to errors.
//  2. Resource[T, I, C]: typed list/details/create/update/delete/search over
//     one collection (Orders, Products, Categories, OrderItems) plus Auth for
//     login/register/validate. No business logic lives here.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) for the
//     sqlite file that keeps the credential across restarts.
//
// # Error Handling
//
// Application failures are *APIError (status, category, optional message
// from the body); network failures are *NetworkError. Match them with
// errors.Is against ErrUnauthorized, ErrNotFound and ErrUnavailable, and
// turn them into user text with UserMessage. Nothing is retried.
package client
