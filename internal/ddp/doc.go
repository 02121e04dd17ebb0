// Package ddp provides access to data download packages (DDPs): the zip
// archives participants export from a platform and submit for donation.
//
// It covers three concerns shared by every platform adapter:
//
//   - Manifests: the declared shape of a platform's export (known member
//     files, filetype, language).
//   - Member access: locating a member file by base name and decoding it as
//     UTF-8 text.
//   - Validation: deciding whether an archive matches any declared manifest.
//
// Platform packages (see internal/tiktok) declare their manifests once at
// init; nothing here depends on a particular platform.
package ddp
