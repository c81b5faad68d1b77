package validate

// Messages for the user schemas, keyed by "field:tag" with a "field" fallback
var (
	createUserMessages = map[string]string{
		"name:required":     "O nome é obrigatório",
		"name:min":          "O nome não pode ser vazio",
		"email":             "O email é obrigatório e deve ser válido",
		"password:required": "A senha é obrigatória",
		"password:min":      "A senha não pode ser vazia",
		"role":              "O valor deve ser (admin) ou (cliente)",
	}
	updateUserMessages = map[string]string{
		"name:min": "O nome não pode ser vazio",
		"email":    "O email deve ser válido",
		"role":     "O valor deve ser (admin) ou (cliente)",
	}
	filterUsersMessages = map[string]string{
		"name:min": "O nome não pode ser vazio",
		"email":    "O email é obrigatório e deve ser válido",
		"role":     "O valor deve ser (admin) ou (cliente)",
	}
)

// CreateUser validates the POST /users body against the create schema
func CreateUser(raw map[string]any) (CreateUserInput, []FieldError) {
	var in CreateUserInput
	if errs := unknownKeys(mapKeys(raw), createUserKeys); errs != nil {
		return in, errs
	}
	var errs []FieldError
	in.Name = stringField(raw, "name", &errs, "O nome é obrigatório")
	in.Email = stringField(raw, "email", &errs, "O email é obrigatório e deve ser válido")
	in.Password = stringField(raw, "password", &errs, "A senha é obrigatória")
	in.Role = stringField(raw, "role", &errs, "O valor deve ser (admin) ou (cliente)")
	if errs != nil {
		return in, errs
	}
	return in, runRules(in, createUserMessages)
}

// UpdateUser validates the PATCH /users/:id body against the update schema
func UpdateUser(raw map[string]any) (UpdateUserInput, []FieldError) {
	var in UpdateUserInput
	if errs := unknownKeys(mapKeys(raw), updateUserKeys); errs != nil {
		return in, errs
	}
	var errs []FieldError
	in.Name = optionalStringField(raw, "name", &errs, "O nome não pode ser vazio")
	in.Email = optionalStringField(raw, "email", &errs, "O email deve ser válido")
	in.Role = optionalStringField(raw, "role", &errs, "O valor deve ser (admin) ou (cliente)")
	if errs != nil {
		return in, errs
	}
	return in, runRules(in, updateUserMessages)
}

// FilterUsers validates the GET /users query against the filter schema
func FilterUsers(rawQuery string) (FilterUsersInput, []FieldError) {
	var in FilterUsersInput
	pairs := parsePairs(rawQuery)
	if errs := unknownKeys(pairKeys(pairs), filterUsersKeys); errs != nil {
		return in, errs
	}
	for _, p := range pairs {
		switch p.key {
		case "name":
			v := p.value
			in.Name = &v
		case "email":
			v := p.value
			in.Email = &v
		case "role":
			v := p.value
			in.Role = &v
		case "offset":
			in.Offset = parseOffset(p.value)
		case "limit":
			n, ferr := parseLimit(p.value)
			if ferr != nil {
				return in, []FieldError{*ferr}
			}
			in.Limit = n
		}
	}
	return in, runRules(in, filterUsersMessages)
}

// mapKeys lists the keys of a decoded JSON body
func mapKeys(raw map[string]any) []string {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	return keys
}

// pairKeys lists the keys of a parsed query string in input order
func pairKeys(pairs []pair) []string {
	keys := make([]string, 0, len(pairs))
	for _, p := range pairs {
		keys = append(keys, p.key)
	}
	return keys
}

// stringField extracts a required string field, recording a field error when
// the value is missing or not a string
func stringField(raw map[string]any, key string, errs *[]FieldError, message string) string {
	v, present := raw[key]
	if !present {
		// Leave it zero; the required rule reports the message
		return ""
	}
	s, ok := v.(string)
	if !ok {
		*errs = append(*errs, FieldError{Campo: key, Mensagem: message})
		return ""
	}
	return s
}

// optionalStringField extracts an optional string field as a pointer
func optionalStringField(raw map[string]any, key string, errs *[]FieldError, message string) *string {
	v, present := raw[key]
	if !present {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		*errs = append(*errs, FieldError{Campo: key, Mensagem: message})
		return nil
	}
	return &s
}
