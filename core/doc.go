/*
Package core holds types shared by all layers of the banner engine, most
notably application errors carrying a numeric code.

Error codes group failures the way callers react to them:

	EMISSING     a font file or image does not exist
	EINVALID     a font file or configuration could not be parsed
	ECONNECTION  a remote image could not be fetched
	ENOFONT      every configured font failed to load

Only ENOFONT is fatal for text rendering; the other codes are logged and the
affected resource is skipped. Errors may be tested for a code with Code,
IsCode or errors.Is against the sentinel errors ErrMissing etc.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package core
