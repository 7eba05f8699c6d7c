package opengl

// ── Lit program ───────────────────────────────────────────────────────────────

// litVertSrc transforms into clip space and hands world-space position,
// normal and UV to the fragment stage.
const litVertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inNormal;
layout(location = 2) in vec2 inUV;

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

out vec3 fragNormal;
out vec3 fragWorldPos;
out vec2 fragUV;

void main() {
    vec4 worldPos = model * vec4(inPosition, 1.0);
    gl_Position   = projection * view * worldPos;
    fragWorldPos  = worldPos.xyz;
    fragNormal    = mat3(transpose(inverse(model))) * inNormal;
    fragUV        = inUV;
}
` + "\x00"

// litFragSrc is Phong with a key and a fill point light, modulated by the
// bound texture.
const litFragSrc = `
#version 410 core
in vec3 fragNormal;
in vec3 fragWorldPos;
in vec2 fragUV;

out vec4 outColor;

uniform vec3 viewPosition;
uniform vec2 uvScale;
uniform sampler2D uTexture;

uniform vec3  lightColor;
uniform vec3  lightPos;
uniform float keyAmbient;
uniform float keyDiffuse;
uniform float keySpecular;
uniform float keyShininess;

uniform vec3  fillColor;
uniform vec3  fillPos;
uniform float fillAmbient;
uniform float fillDiffuse;
uniform float fillSpecular;
uniform float fillShininess;

vec3 phong(vec3 n, vec3 viewDir, vec3 pos, vec3 color,
           float ka, float kd, float ks, float shininess) {
    vec3 l = normalize(pos - fragWorldPos);
    vec3 ambient  = ka * color;
    vec3 diffuse  = kd * max(dot(n, l), 0.0) * color;
    vec3 r        = reflect(-l, n);
    vec3 specular = ks * pow(max(dot(viewDir, r), 0.0), shininess) * color;
    return ambient + diffuse + specular;
}

void main() {
    vec3 n       = normalize(fragNormal);
    vec3 viewDir = normalize(viewPosition - fragWorldPos);

    vec3 key  = phong(n, viewDir, lightPos, lightColor,
                      keyAmbient, keyDiffuse, keySpecular, keyShininess);
    vec3 fill = phong(n, viewDir, fillPos, fillColor,
                      fillAmbient, fillDiffuse, fillSpecular, fillShininess);

    vec4 texel = texture(uTexture, fragUV * uvScale);
    outColor = vec4((key + fill) * texel.rgb, 1.0);
}
` + "\x00"

// ── Marker program ────────────────────────────────────────────────────────────

const markerVertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

void main() {
    gl_Position = projection * view * model * vec4(inPosition, 1.0);
}
` + "\x00"

const markerFragSrc = `
#version 410 core
out vec4 outColor;

void main() {
    outColor = vec4(1.0);
}
` + "\x00"
