package token

type tokenOpts struct {
	latin1   bool
	noHeader bool
}

type TokenOpt func(*tokenOpts)

// Latin1 decodes the input from ISO-8859-1 before reading it.
func Latin1() TokenOpt {
	return func(o *tokenOpts) { o.latin1 = true }
}

// NoHeader accepts documents without the `#VRML V2.0 utf8` line.
func NoHeader() TokenOpt {
	return func(o *tokenOpts) { o.noHeader = true }
}
