// Package core drives a data-donation session for one platform.
//
// A session walks the participant through a fixed conversation: ask for the
// platform's data download package (DDP), validate it, and either show a
// review of the extracted tables for consent or offer to try again. The
// conversation is a [Flow], a resumable state machine that emits one
// [Command] at a time and consumes one [Response] per step. Any host can
// drive it: the HTTP server in internal/web, the interactive CLI in
// cmd/ddport, or a test calling [Run] with a scripted [Responder].
//
// # Platforms
//
// Platforms are registered at init time using [RegisterPlatform]. Each
// [Platform] declares its manifests, the tables shown on the review page and
// the texts of every page:
//
//	core.RegisterPlatform(core.Platform{
//	    Key:       "tiktok",
//	    Name:      "TikTok",
//	    Manifests: []ddp.Manifest{...},
//	    Tables:    []core.DisplaySpec{...},
//	    Texts:     core.PageTexts{...},
//	})
//
// # Sessions
//
// [Service] keeps one Flow per session in memory, stores uploaded archives
// only for the duration of a single step, bounds concurrent uploads with an
// [UploadLimiter] and reaps idle sessions in the background.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError]:
//
//   - SES001-SES004: session errors (expired, unknown platform, finished)
//   - FILE001-FILE005: file errors (size, missing, empty)
//   - UPL002-UPL005: upload errors (busy, cancelled, timeout)
//   - RATE001: request throttling
package core
