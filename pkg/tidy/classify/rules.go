package classify

// Unknown is the category assigned to files whose extension matches no
// rule. Files in this category are reported but never moved.
const Unknown = "unknown"

// categoryRule pairs a category name with the extensions it claims.
// Extensions are lowercase and carry no leading dot.
type categoryRule struct {
	category   string
	extensions []string
}

// rules is the canonical extension table. Order matters: several
// extensions appear under more than one category (for example "md" is
// both a document and a Mega Drive ROM), and the first category listed
// wins. The lookup map is built from this slice in declaration order.
var rules = []categoryRule{
	{"Images", []string{
		"jpg", "jpeg", "png", "gif", "bmp", "tiff", "tif",
		"webp", "svg", "ico", "heic", "heif", "raw", "cr2",
		"nef", "orf", "sr2", "dng",
	}},
	{"Documents", []string{
		"pdf", "doc", "docx", "txt", "rtf", "odt", "pages",
		"tex", "md", "html", "htm", "xml", "epub", "mobi",
	}},
	{"Spreadsheets", []string{
		"xls", "xlsx", "csv", "ods", "numbers", "tsv",
	}},
	{"Presentations", []string{
		"ppt", "pptx", "odp", "key",
	}},
	{"Videos", []string{
		"mp4", "avi", "mkv", "mov", "wmv", "flv", "webm",
		"m4v", "3gp", "ogv", "mpg", "mpeg", "m2v",
	}},
	{"Audio", []string{
		"mp3", "wav", "flac", "aac", "ogg", "wma", "m4a",
		"opus", "mid", "midi", "xm", "mod", "s3m", "it",
		"vitalbank", "ableton", "logic",
	}},
	{"Archives", []string{
		"zip", "rar", "7z", "tar", "gz", "bz2", "xz",
		"dmg", "iso", "img", "sit", "sitx",
		"exe", "msi", "deb", "rpm", "appimage", "pkg", "torrent",
		"xpi",
	}},
	{"Games", []string{
		"gba", "gb", "gbc", "nes", "snes", "sfc", "n64", "z64",
		"md", "smd", "gg", "sms", "pce", "ngp", "ws", "wsc",
		"rom", "iso", "cue", "bin", "img", "nds", "3ds", "cia",
		"srm", "sav", "ips", "ups", "bps", "psu", "mcr", "vmc",
	}},
	{"Code", []string{
		"py", "js", "html", "css", "json", "xml", "yaml", "yml",
		"sh", "bat", "ps1", "php", "rb", "go", "rust", "c", "cpp",
		"h", "hpp", "java", "kt", "swift", "r", "sql", "cfg", "conf",
		"ini", "toml", "env", "dockerfile", "makefile", "cmake",
		"gitignore", "gitattributes", "editorconfig", "eslintrc",
		"prettierrc", "babelrc", "vscode", "idea", "lic", "license",
		"rdp", "ovpn", "pem", "key", "crt", "p12", "pfx", "jks",
		"tfstate", "tf", "hcl", "ics",
	}},
	{"Fonts", []string{
		"ttf", "otf", "woff", "woff2", "eot",
	}},
}

// compoundSuffixes are multi-part extensions that must be matched
// against the whole name, not just the segment after the last dot.
var compoundSuffixes = []string{".tar.gz", ".tar.bz2", ".tar.xz"}

// compoundCategory is where every compound suffix lands.
const compoundCategory = "Archives"

// defaultSkipPatterns are system and metadata files that are never
// classified or moved. Matching is case-insensitive and supports glob
// syntax. Dotfiles are excluded separately regardless of this list.
var defaultSkipPatterns = []string{
	".ds_store",
	".localized",
	"desktop.ini",
	"thumbs.db",
	".directory",
	"$recycle.bin",
	"system volume information",
	".spotlight-v100",
	".trashes",
	".fseventsd",
	".temporaryitems",
}
